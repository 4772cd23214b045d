// Package ping sends ICMP Echo Requests to one or more hosts concurrently
// and measures the round-trip time of the matching Echo Replies.
//
// A [Pinger] starts one worker goroutine per host. Each worker runs a fixed
// number of sequential probe attempts; every attempt opens its own ICMP
// socket, sends one echo request and waits for the reply until the
// per-attempt timeout expires. Results are handed to a [Reporter] as they
// happen and returned from [Pinger.Run] once every worker has finished.
//
// Typical usage:
//
//	p := ping.New(ping.WithReporter(ping.NewTextReporter(report.NewPrinter(os.Stdout))))
//	res, err := p.Run(ctx, []string{"10.0.0.1", "example.com"}, ping.DefaultOptions())
//
// There is no retry: a timed out attempt is reported and the next attempt
// starts. Resolution and privilege failures end the worker of that host
// without affecting the others.
package ping
