package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/traksel/kreq/internal/report"
	"github.com/traksel/kreq/internal/snapshot"
)

// getClientFunc is the function used to create a Kubernetes clientset.
// It can be overridden in tests to inject a fake client.
var getClientFunc = defaultGetClient

func getClient() (kubernetes.Interface, error) {
	return getClientFunc()
}

func defaultGetClient() (kubernetes.Interface, error) {
	// Use in-cluster config or kubeconfig
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		rules,
		&clientcmd.ConfigOverrides{},
	).ClientConfig()
	if err != nil {
		return nil, err
	}

	return kubernetes.NewForConfig(config)
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func runReport(cmd *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	logger := newLogger(verboseFlag)
	defer logger.Sync()

	ctx := context.Background()
	source := snapshot.NewKubeSource(client, logger)

	containers, err := source.Containers(ctx, namespaceFlag)
	if err != nil {
		return fmt.Errorf("failed to fetch pod snapshot: %w", err)
	}

	var nodes []snapshot.NodeResources
	if wideFlag {
		nodes, err = source.Nodes(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch node snapshot: %w", err)
		}
	}

	model := report.Build(report.Options{Namespace: namespaceFlag, Wide: wideFlag}, containers, nodes, logger)

	return outputResult(model, outputFmt)
}
