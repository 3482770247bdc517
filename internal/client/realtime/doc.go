// Package realtime subscribes to inserts on the blogs table through the
// backend's realtime websocket (Phoenix channel protocol, vsn 1.0.0).
package realtime
