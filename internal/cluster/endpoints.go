// Package cluster maps the resolved configuration onto the fixed set of
// cluster endpoints the e2e runner addresses with numbered flags.
package cluster

import "strconv"

// Role pairs an endpoint name with the namespace the runner expects to find
// it in.
type Role struct {
	Name      string
	Namespace string
}

// Roles is the fixed, ordered set of clusters a run addresses. The runner
// numbers its flags from this order: the primary cluster first, the remote
// replication peer second.
var Roles = []Role{
	{Name: "primary", Namespace: "default"},
	{Name: "remote", Namespace: "remote"},
}

// Endpoint is one cluster connection handed to the runner.
type Endpoint struct {
	Name       string `yaml:"name" json:"name"`
	Kubeconfig string `yaml:"kubeconfig" json:"kubeconfig"`
	Context    string `yaml:"context,omitempty" json:"context,omitempty"`
	Namespace  string `yaml:"namespace" json:"namespace"`
}

// Endpoints is the full role-ordered endpoint set for one run.
type Endpoints []Endpoint

// New builds one endpoint per role, all sharing the same kubeconfig.
// Contexts are assigned in role order; when fewer are supplied than there
// are roles, the last one fills the remainder. With no contexts at all the
// runner falls back to the kubeconfig's current context.
func New(kubeconfig string, contexts []string) Endpoints {
	endpoints := make(Endpoints, 0, len(Roles))

	for i, role := range Roles {
		endpoint := Endpoint{
			Name:       role.Name,
			Kubeconfig: kubeconfig,
			Namespace:  role.Namespace,
		}

		if len(contexts) > 0 {
			if i < len(contexts) {
				endpoint.Context = contexts[i]
			} else {
				endpoint.Context = contexts[len(contexts)-1]
			}
		}

		endpoints = append(endpoints, endpoint)
	}

	return endpoints
}

// Args renders the endpoints as the runner's numbered connection flags, the
// context flags trailing the kubeconfig and namespace pairs.
func (e Endpoints) Args() []string {
	args := make([]string, 0, 6*len(e))

	for i, endpoint := range e {
		n := strconv.Itoa(i + 1)
		args = append(args, "-kubeconfig"+n, endpoint.Kubeconfig, "-namespace"+n, endpoint.Namespace)
	}

	for i, endpoint := range e {
		if endpoint.Context != "" {
			args = append(args, "-context"+strconv.Itoa(i+1), endpoint.Context)
		}
	}

	return args
}
