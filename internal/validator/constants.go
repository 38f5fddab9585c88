package validator

import "time"

const (
	// TokenLength is the number of random alphanumerics of a token, a newline
	// terminates it on the wire.
	TokenLength = 63

	DefaultTimeout     = 10 * time.Second
	DefaultListenAddr  = "0.0.0.0:4140"
	DefaultConnectAddr = "192.0.2.2:1404"
)
