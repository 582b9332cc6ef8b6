// Package kube checks the cluster connection parameters before a run. Test
// runs are expensive, so a context name that does not resolve should fail
// here rather than minutes into cluster creation.
package kube

import (
	"fmt"

	"go.uber.org/multierr"
	"k8s.io/client-go/tools/clientcmd"
)

// ValidateContexts verifies that every requested context exists in the
// kubeconfig. With no explicit contexts the runner uses the kubeconfig's
// current context and there is nothing to check, so even an absent
// kubeconfig passes.
func ValidateContexts(kubeconfig string, contexts []string) error {
	if len(contexts) == 0 {
		return nil
	}

	config, err := clientcmd.LoadFromFile(kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to load kubeconfig %s: %w", kubeconfig, err)
	}

	var errs []error

	for _, context := range contexts {
		if _, ok := config.Contexts[context]; !ok {
			errs = append(errs, fmt.Errorf("context %q does not exist in kubeconfig %s", context, kubeconfig))
		}
	}

	return multierr.Combine(errs...)
}
