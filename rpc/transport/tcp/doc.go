// Package tcp implements the admin RPC transport over TCP sockets. It only provides
// connectors for the base package, which carries the framing, connection pooling and
// worker handling.
//
// Socket options (no delay, keep alive, linger, buffer sizes) are applied to every
// dialed and every accepted connection from the SocketConf and TCPConf settings.
//
// The default server read buffer is 64 KB. Admin messages are small, larger frames
// are read into a temporary buffer.
package tcp
