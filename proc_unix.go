//go:build unix

package wasicore

import "golang.org/x/sys/unix"

// signalMap translates the WASI signal enumeration to the host's unix.Signal,
// grounded on uvwasi__translate_to_uv_signal's intent (libuv's own table
// maps 1:1 onto POSIX signal numbers on unix).
var signalMap = map[Signal]unix.Signal{
	SignalHup:    unix.SIGHUP,
	SignalInt:    unix.SIGINT,
	SignalQuit:   unix.SIGQUIT,
	SignalIll:    unix.SIGILL,
	SignalTrap:   unix.SIGTRAP,
	SignalAbrt:   unix.SIGABRT,
	SignalBus:    unix.SIGBUS,
	SignalFpe:    unix.SIGFPE,
	SignalKill:   unix.SIGKILL,
	SignalUsr1:   unix.SIGUSR1,
	SignalSegv:   unix.SIGSEGV,
	SignalUsr2:   unix.SIGUSR2,
	SignalPipe:   unix.SIGPIPE,
	SignalAlrm:   unix.SIGALRM,
	SignalTerm:   unix.SIGTERM,
	SignalChld:   unix.SIGCHLD,
	SignalCont:   unix.SIGCONT,
	SignalStop:   unix.SIGSTOP,
	SignalTstp:   unix.SIGTSTP,
	SignalTtin:   unix.SIGTTIN,
	SignalTtou:   unix.SIGTTOU,
	SignalUrg:    unix.SIGURG,
	SignalXcpu:   unix.SIGXCPU,
	SignalXfsz:   unix.SIGXFSZ,
	SignalVtalrm: unix.SIGVTALRM,
	SignalProf:   unix.SIGPROF,
	SignalWinch:  unix.SIGWINCH,
	SignalPoll:   unix.SIGIO,
	SignalPwr:    unix.SIGPWR,
	SignalSys:    unix.SIGSYS,
}

func raiseSignal(sig Signal) Errno {
	host, ok := signalMap[sig]
	if !ok {
		return ENOSYS
	}
	if err := unix.Kill(unix.Getpid(), host); err != nil {
		return makeErrno(err)
	}
	return ESUCCESS
}

