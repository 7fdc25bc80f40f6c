// Package gateway is the generic call contract to the remote RPC endpoint.
//
// Every backend operation is a named action with a flat parameter map, sent
// to one fixed URL and answered with a shared response envelope. The
// package normalizes method encoding, parses responses, and classifies
// failures into transport, unexpected-response, and application errors.
// It deliberately performs no retries.
package gateway
