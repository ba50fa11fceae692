// Package chatcontext resolves the subject a chat is about and decides which attachments
// can be captured for it.
//
// A subject is either set explicitly by the user or inferred from the console page
// location. Resolution is a pure function of both: explicit context wins when it names a
// kind, a name and a namespace, otherwise the location is used. A location pointing at an
// alert yields an alert subject that carries the label set from the query string.
package chatcontext
