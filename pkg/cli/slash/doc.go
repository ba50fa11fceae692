// Package slash implements the slash commands shared by the line-based and the terminal UI
// chat front-ends. Commands act on a session.Session; steps that need the terminal, such
// as running an editor or asking for confirmation, are handed back to the front-end.
package slash
