// Package k8s provides the cluster adapters of the chat session: REST config loading,
// generic object lookup, event listing and log excerpts.
//
// Key features:
//   - REST config building from kubeconfig files (BuildRESTConfig, LoadRESTConfig)
//   - Client bundle with a discovery backed REST mapper (NewClients)
//   - Object lookup by kind that treats absence as no result (ResourceClient)
//   - Events of an object, oldest first (EventClient)
//   - Tail of container logs for pods and workloads (LogClient)
package k8s
