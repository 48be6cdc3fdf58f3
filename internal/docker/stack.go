// Package docker asks the Docker engine about running stacks.
package docker

import (
	"AppBuilder/internal/constants"
	"context"
	"slices"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// composeProjectLabel is set on containers started by docker compose.
const composeProjectLabel = "com.docker.compose.project"

// ContainerLister is the part of the engine API the stack check needs.
type ContainerLister interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	Close() error
}

// StackChecker lists the running containers of a stack.
type StackChecker struct {
	connect func() (ContainerLister, error)
}

// NewStackChecker connects with the standard DOCKER_HOST environment settings.
func NewStackChecker() *StackChecker {
	return &StackChecker{connect: func() (ContainerLister, error) {
		return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	}}
}

// NewStackCheckerWith uses the given lister, for tests and alternative engines.
func NewStackCheckerWith(l ContainerLister) *StackChecker {
	return &StackChecker{connect: func() (ContainerLister, error) { return l, nil }}
}

// RunningServices returns the sorted names of the running containers deployed
// as stack (swarm) or as compose project stack.
func (c *StackChecker) RunningServices(ctx context.Context, stack string) ([]string, error) {
	cli, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer cli.Close()

	var names []string
	for _, label := range []string{constants.DockerStackLabel, composeProjectLabel} {
		containers, err := cli.ContainerList(ctx, container.ListOptions{
			Filters: filters.NewArgs(
				filters.Arg("label", label+"="+stack),
				filters.Arg("status", "running"),
			),
		})
		if err != nil {
			return nil, err
		}
		for _, ctr := range containers {
			names = append(names, containerName(ctr))
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

func containerName(ctr container.Summary) string {
	if len(ctr.Names) > 0 {
		return strings.TrimPrefix(ctr.Names[0], "/")
	}
	if len(ctr.ID) > 12 {
		return ctr.ID[:12]
	}
	return ctr.ID
}
