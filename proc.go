package wasicore

import "crypto/rand"

// Signal is the WASI signal number passed to proc_raise, using the
// upstream WASI enumeration (SIGHUP=1 .. SIGSYS=30).
type Signal uint8

const (
	SignalHup Signal = iota + 1
	SignalInt
	SignalQuit
	SignalIll
	SignalTrap
	SignalAbrt
	SignalBus
	SignalFpe
	SignalKill
	SignalUsr1
	SignalSegv
	SignalUsr2
	SignalPipe
	SignalAlrm
	SignalTerm
	SignalChld
	SignalCont
	SignalStop
	SignalTstp
	SignalTtin
	SignalTtou
	SignalUrg
	SignalXcpu
	SignalXfsz
	SignalVtalrm
	SignalProf
	SignalWinch
	SignalPoll
	SignalPwr
	SignalSys
)

// ExitHook is called by ProcExit with the guest's exit code. The embedder
// supplies this; a nil hook makes ProcExit a no-op that still reports
// success, so embedders that don't care about guest exit codes need not
// wire one up.
type ExitHook func(code uint32)

// ProcExit implements proc_exit: invokes the sandbox's configured exit hook
// and does not return control to the guest (the hook is expected to unwind
// or terminate the guest's execution; the core itself has nothing further
// to do once called).
func (s *Sandbox) ProcExit(code uint32) {
	if s.exitHook != nil {
		s.exitHook(code)
	}
}

// ProcRaise implements proc_raise: maps sig to the host signal and sends it
// to the calling process, per uvwasi_proc_raise. Unmapped signals fail
// ENOSYS rather than being silently dropped.
func (s *Sandbox) ProcRaise(sig Signal) Errno {
	return raiseSignal(sig)
}

// RandomGet implements random_get: fills buf from a cryptographically
// secure host random source. Requires no right (random_get is ambient).
func (s *Sandbox) RandomGet(buf []byte) Errno {
	if _, err := rand.Read(buf); err != nil {
		return makeErrno(err)
	}
	return ESUCCESS
}

// SchedYield implements sched_yield. On Linux it yields the calling OS
// thread via sched_yield(2); on other platforms it calls runtime.Gosched,
// which yields only the goroutine and does not yield the OS thread.
func (s *Sandbox) SchedYield() Errno {
	return schedYield()
}

// Subscription/Event types for poll_oneoff follow the upstream WASI byte
// layout, but poll_oneoff itself is left unimplemented here and always
// reports ENOTSUP, along with the socket operations below, until a concrete
// transport is wired in.

// PollOneoff implements poll_oneoff. Always ENOTSUP in this revision.
func (s *Sandbox) PollOneoff([]byte, uint32) (uint32, Errno) { return 0, ENOTSUP }

// SockAccept implements sock_accept. Always ENOTSUP.
func (s *Sandbox) SockAccept(fd Fd, flags uint16) (Fd, Errno) { return 0, ENOTSUP }

// SockRecv implements sock_recv. Always ENOTSUP.
func (s *Sandbox) SockRecv(fd Fd, iovs [][]byte, flags uint16) (Filesize, uint16, Errno) {
	return 0, 0, ENOTSUP
}

// SockSend implements sock_send. Always ENOTSUP.
func (s *Sandbox) SockSend(fd Fd, iovs [][]byte, flags uint16) (Filesize, Errno) { return 0, ENOTSUP }

// SockShutdown implements sock_shutdown. Always ENOTSUP.
func (s *Sandbox) SockShutdown(fd Fd, how uint8) Errno { return ENOTSUP }
