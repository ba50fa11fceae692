// Package chat groups the services behind a chat with the assistant service:
//
//   - attachment: context snippets staged for the next prompt and their preview modal
//   - chatcontext: which resource or alert the conversation is about
//   - feedback: per-response ratings and comments
//   - history: the committed conversation, code blocks and transcript export
//   - session: the orchestrator that ties the others to the query API
package chat
