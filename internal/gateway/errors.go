package gateway

import "errors"

// ErrGatewayUnavailable indicates connectivity to the gateway session store
// could not be established.
var ErrGatewayUnavailable = errors.New("gateway unavailable")

// ErrDecodeFailed indicates a response was received but could not be
// interpreted.
var ErrDecodeFailed = errors.New("response decode failed")
