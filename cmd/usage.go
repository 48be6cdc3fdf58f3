package cmd

import (
	"AppBuilder/internal/console"
	"AppBuilder/internal/version"
	"fmt"
	"strings"
)

// PrintHelp prints usage information.
// If target is empty, prints global usage.
// If target is specified, prints usage for that command.
func PrintHelp(target string) {
	fmt.Fprintln(console.Stdout, console.Parse(GetUsage(target)))
}

// GetUsage returns usage information as a string.
// If target is empty, returns global usage.
// If target is specified, returns usage for that command.
func GetUsage(target string) string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appName := version.ApplicationName
	appCmd := version.CommandName

	if target == "" {
		printStr(fmt.Sprintf("Usage: {{_UsageCommand_}}%s{{|-|}} [{{_UsageCommand_}}<Command>{{|-|}}] [{{_UsageOption_}}<Flags>{{|-|}}]", appCmd))
		printStr("")
		printStr(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", appName, version.Version))
		printStr(fmt.Sprintf("Configures an {{_ApplicationName_}}%s{{|-|}} install. Without a command it runs '{{_UsageCommand_}}setup{{|-|}}'.", appName))
		printStr("Any option not given on the command line is asked for.")
		printStr("")
		printStr("Flags:")
		printStr("")
		printModifiers(printStr)
		printStr("")
		printStr("Commands:")
		printStr("")
	}

	showAll := target == ""
	match := func(cmd string) bool {
		return showAll || cmd == target
	}

	if match("setup") {
		if showAll {
			printStr("{{_UsageCommand_}}setup{{|-|}} [{{_UsageOption_}}options{{|-|}}]")
			printStr("	Update the appbuilder configuration")
		} else {
			printSetup(printStr, appCmd)
		}
	}
	for _, ns := range taskNamespaces {
		if !match(ns) {
			continue
		}
		printStr(fmt.Sprintf("{{_UsageCommand_}}%s{{|-|}} [{{_UsageOption_}}options{{|-|}}]", ns))
		printStr("	" + taskTitles[ns])
		if showAll {
			continue
		}
		printStr("")
		printStr("  [options] :")
		for _, d := range taskFlags[ns] {
			printStr(fmt.Sprintf("    {{_UsageOption_}}--%s{{|-|}}%s : %s", d.name, argHint(d), d.usage))
		}
		printStr("")
		printStr(fmt.Sprintf("  Options are also accepted as {{_UsageOption_}}--%s.[option]{{|-|}}.", ns))
	}
	if match("version") {
		printStr("{{_UsageCommand_}}version{{|-|}}")
		printStr(fmt.Sprintf("	Display the {{_ApplicationName_}}%s{{|-|}} version", appName))
	}
	if match("help") {
		printStr("{{_UsageCommand_}}help{{|-|}} [{{_UsageCommand_}}<command>{{|-|}}]")
		printStr("	Display the usage of a command")
	}

	if !showAll && target != "help" && target != "version" {
		printStr("")
		printStr("Flags:")
		printStr("")
		printModifiers(printStr)
	}

	return strings.TrimRight(sb.String(), "\n")
}

var taskTitles = map[string]string{
	"ssl":  "Configure the SSL certificate and the nginx site",
	"db":   "Configure the database password",
	"bot":  "Configure the bot_manager",
	"smtp": "Configure the notification emails",
}

func printModifiers(printStr func(string)) {
	printStr("{{_UsageCommand_}}-v --verbose{{|-|}}")
	printStr("	Verbose")
	printStr("{{_UsageCommand_}}-x --debug{{|-|}}")
	printStr("	Debug")
	printStr("{{_UsageCommand_}}-y --yes{{|-|}}")
	printStr("	Assume the default answer for all prompts")
	printStr("{{_UsageCommand_}}--dir{{|-|}} {{_UsageFile_}}<folder>{{|-|}}")
	printStr("	The project folder (the current folder by default)")
	printStr("{{_UsageCommand_}}-h --help{{|-|}}")
	printStr("	Show this help")
}

func printSetup(printStr func(string), appCmd string) {
	printStr(fmt.Sprintf("usage: $ {{_UsageCommand_}}%s setup{{|-|}} [{{_UsageOption_}}options{{|-|}}]", appCmd))
	printStr("")
	printStr("Update the appbuilder configuration.")
	printStr("")
	printStr("  [options] :")
	printStr("    {{_UsageOption_}}--port{{|-|}} [port#] : <number> specify the port to listen on")
	printStr("")
	printStr("    {{_UsageOption_}}--stack{{|-|}}=[ab] : the Docker Stack reference (\"ab\" by default) to use for this install.")
	printStr("")
	printStr("    {{_UsageOption_}}--tag{{|-|}} [master,develop] : <string> which version of the Docker containers to use.")
	printStr("")
	printStr("    {{_UsageOption_}}--name{{|-|}} [folder] : sub folder of the project that receives the support scripts.")
	printStr("")
	printStr("    {{_UsageOption_}}--exposeDB{{|-|}} [true,false] : publish the DB port on the host")
	printStr("    {{_UsageOption_}}--portDB{{|-|}} [port#] : the host port of the DB (when exposed)")
	printStr("")
	printStr("")
	printStr("    settings for ssl:")
	printStr(fmt.Sprintf("    {{_UsageOption_}}--ssl.[option]{{|-|}} : see $ {{_UsageCommand_}}%s ssl --help{{|-|}} for list of options", appCmd))
	printStr("")
	printStr("    settings for db:")
	printStr(fmt.Sprintf("    {{_UsageOption_}}--db.[option]{{|-|}} : see $ {{_UsageCommand_}}%s db --help{{|-|}} for list of options", appCmd))
	printStr("")
	printStr("    settings for bot_manager:")
	printStr("    {{_UsageOption_}}--bot.[option]{{|-|}}")
	printStr("")
	printStr("    {{_UsageOption_}}--bot.botEnable{{|-|}} [true,false] : enable the #Slack bot")
	printStr("    {{_UsageOption_}}--bot.botToken{{|-|}} [token]    : enter the #Slack bot API token")
	printStr("    {{_UsageOption_}}--bot.botName{{|-|}} [name]      : the name displayed for the #Slack bot")
	printStr("    {{_UsageOption_}}--bot.slackChannel{{|-|}} [name] : which #Slack channel to interact with")
	printStr("    {{_UsageOption_}}--bot.hosttcpport{{|-|}} [port#] : (on Mac OS) specify a host port for")
	printStr("                                the command processor")
	printStr("")
	printStr("    settings for notification_email:")
	printStr(fmt.Sprintf("    {{_UsageOption_}}--smtp.[option]{{|-|}} : see $ {{_UsageCommand_}}%s smtp --help{{|-|}} for list of options", appCmd))
	printStr("")
	printStr("")
	printStr("  examples:")
	printStr("")
	printStr(fmt.Sprintf("    $ {{_UsageCommand_}}%s setup --port 8080 --tag master{{|-|}}", appCmd))
	printStr("        - edits docker-compose.yml to listen on port 8080")
	printStr("        - edits docker-compose.yml to use :master containers")
	printStr("        - asks questions for the remaining configuration options")
}

func argHint(d flagDef) string {
	switch d.kind {
	case boolFlag:
		return " [true,false]"
	case intFlag:
		return " [port#]"
	}
	return " [" + strings.ToLower(d.name) + "]"
}
