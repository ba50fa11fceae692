// Package client provides the HTTP clients olschat talks to:
//
//   - ols: the OpenShift Lightspeed query, feedback and authorization API
//   - prometheus: the alert rules API used to attach firing alerts
//   - netretry: retry classification shared by both
package client
