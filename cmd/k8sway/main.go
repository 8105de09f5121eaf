// Package main is the entry point for the k8sway CLI.
//
// k8sway resolves the newest machine image in every AWS region, declares
// the network, security groups, node groups, load balancers and DNS records
// of a hand-built Kubernetes cluster, and deploys them as one CloudFormation
// stack.
//
// Commands: init, images, synth, deploy, destroy, keypair.
//
// For detailed usage information, run:
//
//	k8sway --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/napo-io/k8sway/cmd/k8sway/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
