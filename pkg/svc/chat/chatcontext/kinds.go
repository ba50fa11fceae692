package chatcontext

import (
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// resourceKinds maps console URL resource segments to their API types.
var resourceKinds = map[string]schema.GroupVersionKind{
	"pods":                   {Version: "v1", Kind: "Pod"},
	"services":               {Version: "v1", Kind: "Service"},
	"configmaps":             {Version: "v1", Kind: "ConfigMap"},
	"secrets":                {Version: "v1", Kind: "Secret"},
	"serviceaccounts":        {Version: "v1", Kind: "ServiceAccount"},
	"persistentvolumeclaims": {Version: "v1", Kind: "PersistentVolumeClaim"},
	"persistentvolumes":      {Version: "v1", Kind: "PersistentVolume"},
	"nodes":                  {Version: "v1", Kind: "Node"},
	"namespaces":             {Version: "v1", Kind: "Namespace"},
	"deployments":            {Group: "apps", Version: "v1", Kind: "Deployment"},
	"replicasets":            {Group: "apps", Version: "v1", Kind: "ReplicaSet"},
	"statefulsets":           {Group: "apps", Version: "v1", Kind: "StatefulSet"},
	"daemonsets":             {Group: "apps", Version: "v1", Kind: "DaemonSet"},
	"jobs":                   {Group: "batch", Version: "v1", Kind: "Job"},
	"cronjobs":               {Group: "batch", Version: "v1", Kind: "CronJob"},
	"ingresses":              {Group: "networking.k8s.io", Version: "v1", Kind: "Ingress"},
	"networkpolicies":        {Group: "networking.k8s.io", Version: "v1", Kind: "NetworkPolicy"},
	"horizontalpodautoscalers": {
		Group: "autoscaling", Version: "v2", Kind: "HorizontalPodAutoscaler",
	},
	"routes":            {Group: "route.openshift.io", Version: "v1", Kind: "Route"},
	"deploymentconfigs": {Group: "apps.openshift.io", Version: "v1", Kind: "DeploymentConfig"},
	"buildconfigs":      {Group: "build.openshift.io", Version: "v1", Kind: "BuildConfig"},
}

var (
	eventKinds = []string{"CronJob", "DaemonSet", "Deployment", "Job", "Pod", "ReplicaSet", "StatefulSet"}
	logKinds   = []string{"DaemonSet", "Deployment", "Job", "Pod", "ReplicaSet", "StatefulSet"}
)

// SupportsEvents reports whether events can be attached for kind.
func SupportsEvents(kind string) bool {
	return slices.Contains(eventKinds, kind)
}

// SupportsLogs reports whether container logs can be attached for kind.
func SupportsLogs(kind string) bool {
	return slices.Contains(logKinds, kind)
}

// LookupKind returns the API type of a well-known kind.
// Both the kind ("Deployment") and the plural resource ("deployments") are accepted,
// case-insensitively.
func LookupKind(name string) (schema.GroupVersionKind, bool) {
	lowered := strings.ToLower(name)

	if gvk, ok := resourceKinds[lowered]; ok {
		return gvk, true
	}

	for _, gvk := range resourceKinds {
		if strings.EqualFold(gvk.Kind, name) {
			return gvk, true
		}
	}

	return schema.GroupVersionKind{}, false
}

// parseResourceSegment understands both plural segments and group~version~Kind references.
func parseResourceSegment(segment string) (schema.GroupVersionKind, bool) {
	parts := strings.Split(segment, "~")
	if len(parts) == 3 {
		if parts[1] == "" || parts[2] == "" {
			return schema.GroupVersionKind{}, false
		}

		group := parts[0]
		if group == "core" {
			group = ""
		}

		return schema.GroupVersionKind{Group: group, Version: parts[1], Kind: parts[2]}, true
	}

	gvk, ok := resourceKinds[segment]

	return gvk, ok
}
