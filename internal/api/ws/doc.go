// Package ws streams desktop scenes to the page over WebSocket.
//
// Each connection creates its own desktop session and closes it on
// disconnect. The page forwards raw input; the service answers with
// complete scenes, dropping intermediate frames for slow readers.
//
// Message Types (Client → Server):
//   - viewport: page size {width, height}
//   - launch: open or focus an app {app_id}
//   - pointer_down: press on a window {window_id, region, x, y}
//   - pointer_move: pointer position {x, y}
//   - pointer_up: release
//   - control: title bar button {window_id, action}
//   - resize: set window size {window_id, width, height}
//   - app_action: interaction inside a window {window_id, action, args}
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - session: sent once with the session and connection ids
//   - scene: full render description
//   - pong: ping reply
//   - error: the message was rejected; the connection stays open
//
// Example Usage:
//
//	handler := ws.NewHandler(sessions, ws.DefaultOptions())
//	router.GET("/desktop", handler.HandleConnection)
package ws
