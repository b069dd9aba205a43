// Package ui is the terminal side of the client: a Bubble Tea program that
// only owns the screen and the keyboard.
//
// Message flow:
//   - Key presses and window size changes arrive as tea.Msg values. Update
//     converts them into event.Keypress and event.Resize and queues them on an
//     internal channel without blocking the Bubble Tea loop.
//   - Frontend.Poll drains that channel with a bounded wait, which lets
//     backend.Poller interleave input with its refresh clock.
//   - Frontend.Render receives the model's view.Snapshot, renders it with
//     view.Render and sends the finished frame back into the program, so the
//     Bubble Tea View method only ever returns the last frame.
//
// All application state lives in internal/app; nothing here knows about the
// server.
package ui
