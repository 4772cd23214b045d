// Package traceroute discovers the routers on the path to a host by sending
// UDP probes with increasing IP TTL and collecting the ICMP Time Exceeded and
// Destination Unreachable messages they provoke.
//
// It exposes a [Client] for tracing one or more targets with configurable
// [Options]. Hops are probed strictly one after another: TTL 1 first, then 2,
// and so on, until the destination itself answers or the hop ceiling is reached.
// A hop that does not answer within the timeout is reported as a wildcard.
//
// Two receive modes exist:
//   - a raw ICMP socket (the default), which requires root or CAP_NET_RAW
//   - the error queue of the sending UDP socket (IP_RECVERR), which works
//     without privileges on Linux
//
// Typical usage:
//
//	client := traceroute.NewClient(traceroute.WithReporter(reporter))
//	opts := traceroute.DefaultOptions()
//	res, err := client.Run(ctx, []traceroute.Target{{Address: "example.com"}}, &opts)
//	// res maps each Target to its hops, ordered by TTL
package traceroute
