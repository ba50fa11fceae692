package chatcontext

import (
	"net/url"
	"strings"

	"github.com/devantler-tech/olschat/pkg/svc/chat/attachment"
)

// Location is the subject inferred from a console page.
type Location struct {
	Group     string
	Version   string
	Kind      string
	Name      string
	Namespace string
	// Labels holds the query-string parameters of alert pages.
	Labels map[string]string
}

// ParseLocation infers a subject from a console URL or path.
// Unrecognised or partial locations yield the zero Location.
//
// Recognised shapes:
//
//	/k8s/ns/<namespace>/<resource>/<name>[/<tab>]
//	/k8s/cluster/<resource>/<name>[/<tab>]
//	/monitoring/alerts/<id>?alertname=<name>&namespace=<ns>&...
//	/dev-monitoring/ns/<namespace>/alerts/<id>?alertname=<name>&...
//
// where <resource> is a plural resource name or a group~version~Kind reference.
func ParseLocation(raw string) Location {
	parsed, err := url.Parse(raw)
	if err != nil {
		return Location{}
	}

	segments := splitPath(parsed.Path)

	switch {
	case len(segments) >= 5 && segments[0] == "k8s" && segments[1] == "ns":
		return resourceLocation(segments[3], segments[4], segments[2])
	case len(segments) >= 4 && segments[0] == "k8s" && segments[1] == "cluster":
		return resourceLocation(segments[2], segments[3], "")
	case len(segments) >= 3 && segments[0] == "monitoring" && segments[1] == "alerts":
		return alertLocation(parsed.Query(), "")
	case len(segments) >= 5 && segments[0] == "dev-monitoring" && segments[1] == "ns" &&
		segments[3] == "alerts":
		return alertLocation(parsed.Query(), segments[2])
	default:
		return Location{}
	}
}

func splitPath(path string) []string {
	var segments []string

	for segment := range strings.SplitSeq(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	return segments
}

func resourceLocation(resource, name, namespace string) Location {
	gvk, ok := parseResourceSegment(resource)
	if !ok {
		return Location{}
	}

	return Location{
		Group:     gvk.Group,
		Version:   gvk.Version,
		Kind:      gvk.Kind,
		Name:      name,
		Namespace: namespace,
	}
}

func alertLocation(query url.Values, namespace string) Location {
	labels := make(map[string]string, len(query))
	for key, values := range query {
		if len(values) > 0 {
			labels[key] = values[0]
		}
	}

	name := labels["alertname"]
	if name == "" {
		return Location{}
	}

	if namespace == "" {
		namespace = labels["namespace"]
	}

	return Location{
		Kind:      attachment.KindAlert,
		Name:      name,
		Namespace: namespace,
		Labels:    labels,
	}
}
