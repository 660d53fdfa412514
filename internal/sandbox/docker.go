package sandbox

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	log "github.com/sirupsen/logrus"

	"optimus-bench/internal/api"
	"optimus-bench/internal/config"
)

// CaseResult is the verdict for one test case executed locally.
type CaseResult struct {
	Case     api.TestCase
	Passed   bool
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunJob executes a job spec's test cases in throwaway containers on the
// local docker daemon, using the same runner contract the execution cluster
// uses: source and stdin are handed to the container base64-encoded in env.
// Networking is disabled and memory capped, matching the cluster sandbox.
func RunJob(ctx context.Context, spec api.JobSpec, cfg config.Config) ([]CaseResult, error) {
	imageName, ok := cfg.RunnerImages[strings.ToLower(spec.Language)]
	if !ok {
		return nil, fmt.Errorf("no runner image configured for language %q", spec.Language)
	}

	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	defer cli.Close()

	pull, err := cli.ImagePull(ctx, imageName, image.PullOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to pull image %s: %w", imageName, err)
	}
	io.Copy(io.Discard, pull)
	pull.Close()

	results := make([]CaseResult, 0, len(spec.TestCases))
	for _, tc := range spec.TestCases {
		res, err := runCase(ctx, cli, imageName, spec, tc, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func runCase(ctx context.Context, cli *client.Client, imageName string, spec api.JobSpec, tc api.TestCase, cfg config.Config) (CaseResult, error) {
	timeout := time.Duration(spec.TimeoutMS) * time.Millisecond
	caseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	env := []string{
		"RUNNER_LANGUAGE=" + spec.Language,
		"SOURCE_CODE=" + base64.StdEncoding.EncodeToString([]byte(spec.SourceCode)),
		"TEST_INPUT=" + base64.StdEncoding.EncodeToString([]byte(tc.Input)),
		fmt.Sprintf("RUNNER_TIMEOUT_MS=%d", spec.TimeoutMS),
	}

	resp, err := cli.ContainerCreate(caseCtx, &container.Config{
		Image:           imageName,
		Env:             env,
		Tty:             false,
		AttachStdout:    true,
		AttachStderr:    true,
		NetworkDisabled: true,
	}, &container.HostConfig{
		Resources: container.Resources{
			Memory: cfg.MaxMemoryMB * 1024 * 1024,
		},
	}, nil, nil, "")
	if err != nil {
		return CaseResult{}, fmt.Errorf("failed to create container: %w", err)
	}
	defer cli.ContainerRemove(ctx, resp.ID, container.RemoveOptions{Force: true})

	attachResp, err := cli.ContainerAttach(caseCtx, resp.ID, container.AttachOptions{
		Stream: true,
		Stdout: true,
		Stderr: true,
	})
	if err != nil {
		return CaseResult{}, fmt.Errorf("failed to attach to container: %w", err)
	}
	defer attachResp.Close()

	if err := cli.ContainerStart(caseCtx, resp.ID, container.StartOptions{}); err != nil {
		return CaseResult{}, fmt.Errorf("failed to start container: %w", err)
	}

	var stdout, stderr bytes.Buffer
	copyDone := make(chan error, 1)
	go func() {
		_, err := stdcopy.StdCopy(&stdout, &stderr, attachResp.Reader)
		copyDone <- err
	}()

	statusCh, errCh := cli.ContainerWait(caseCtx, resp.ID, container.WaitConditionNotRunning)
	select {
	case err := <-errCh:
		return CaseResult{}, fmt.Errorf("error waiting for container: %w", err)
	case <-statusCh:
	}
	<-copyDone

	inspect, err := cli.ContainerInspect(ctx, resp.ID)
	if err != nil {
		return CaseResult{}, fmt.Errorf("failed to inspect container: %w", err)
	}

	res := CaseResult{
		Case:     tc,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: inspect.State.ExitCode,
	}
	res.Passed = res.ExitCode == 0 &&
		strings.TrimSpace(res.Stdout) == strings.TrimSpace(tc.ExpectedOutput)

	log.WithFields(log.Fields{
		"language": spec.Language,
		"case":     tc.ID,
		"exit":     res.ExitCode,
		"passed":   res.Passed,
	}).Debug("sandbox case finished")
	return res, nil
}
