// Package server provides HTTP routing, middleware, and the webhook and
// OAuth handlers for the playback remote.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. [BasicRouter] implements the interface
// on [http.ServeMux] with method filtering.
//
// # Webhook Endpoint
//
// [CommandHandler] accepts POST /ai/command with a {"command": "..."} body,
// runs the text through the command service, and answers with the outcome
// JSON. The HTTP status is 200 whenever a command was dispatched; the
// outcome's success flag carries the command-level verdict, matching how an
// assistant integration consumes the endpoint.
//
// Requests are gated by [VerifyAPIKey], which compares the X-API-Key header
// against the configured key in constant time.
//
// # OAuth Flow
//
// [OAuthHandler] serves the /login redirect and the /callback exchange. The
// callback validates the state parameter (CSRF protection), trades the
// authorization code for a credential, and delivers it through a channel.
// Only one callback is processed per flow to prevent replay.
//
// The CLI login command starts a temporary server with this handler, opens
// the browser, waits on [OAuthHandler.Result], and shuts the server down
// once the credential arrives. The serve command mounts the same handler
// permanently so the flow can be redone without restarting.
package server
