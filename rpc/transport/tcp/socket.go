package tcp

import (
	"net"
	"time"

	"github.com/dgrid/dgrid/rpc/common"
)

// upgradeConnection applies the configured socket options to a TCP connection.
// Connections of other types are left untouched
func upgradeConnection(conn net.Conn, socket common.SocketConf, opts common.TCPConf) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil
	}

	// Disable Nagle's algorithm if configured
	if err := tcpConn.SetNoDelay(opts.TCPNoDelay); err != nil {
		return err
	}

	if socket.WriteBufferSize > 0 {
		if err := tcpConn.SetWriteBuffer(socket.WriteBufferSize); err != nil {
			return err
		}
	}

	if socket.ReadBufferSize > 0 {
		if err := tcpConn.SetReadBuffer(socket.ReadBufferSize); err != nil {
			return err
		}
	}

	if opts.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return err
		}
		if err := tcpConn.SetKeepAlivePeriod(time.Duration(opts.TCPKeepAliveSec) * time.Second); err != nil {
			return err
		}
	}

	// 0 keeps the operating system default
	if opts.TCPLingerSec > 0 {
		if err := tcpConn.SetLinger(opts.TCPLingerSec); err != nil {
			return err
		}
	}

	return nil
}
