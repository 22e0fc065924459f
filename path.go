package wasicore

import (
	"os"
	"time"

	"github.com/wasicore/wasicore/sandboxfs"
)

// dirOf looks up fd, requiring RightPathOpen-independent base rights need,
// and returns its Root for path resolution. Only directory descriptors
// (preopens and directories opened through path_open) carry a Root.
func (s *Sandbox) dirOf(fd Fd, needBase, needInheriting Rights) (*descriptor, *sandboxfs.Root, Errno) {
	d, errno := s.table.get(fd, needBase, needInheriting)
	if errno != ESUCCESS {
		return nil, nil, errno
	}
	if d.root == nil {
		return nil, nil, ENOTDIR
	}
	return d, d.root, ESUCCESS
}

// PathCreateDirectory implements path_create_directory. Requires
// RightPathCreateDirectory.
func (s *Sandbox) PathCreateDirectory(fd Fd, path string) Errno {
	_, root, errno := s.dirOf(fd, RightPathCreateDirectory, 0)
	if errno != ESUCCESS {
		return errno
	}
	return makeErrno(root.Mkdir(path, 0o777))
}

// PathRemoveDirectory implements path_remove_directory. Requires
// RightPathRemoveDirectory.
func (s *Sandbox) PathRemoveDirectory(fd Fd, path string) Errno {
	_, root, errno := s.dirOf(fd, RightPathRemoveDirectory, 0)
	if errno != ESUCCESS {
		return errno
	}
	return makeErrno(root.Rmdir(path))
}

// PathUnlinkFile implements path_unlink_file. Requires RightPathUnlinkFile.
func (s *Sandbox) PathUnlinkFile(fd Fd, path string) Errno {
	_, root, errno := s.dirOf(fd, RightPathUnlinkFile, 0)
	if errno != ESUCCESS {
		return errno
	}
	return makeErrno(root.Unlink(path))
}

// PathFilestatGet implements path_filestat_get. flags selects symlink
// follow. Requires RightPathFilestatGet.
func (s *Sandbox) PathFilestatGet(fd Fd, flags Lookupflags, path string) (Filestat, Errno) {
	_, root, errno := s.dirOf(fd, RightPathFilestatGet, 0)
	if errno != ESUCCESS {
		return Filestat{}, errno
	}
	info, err := root.Stat(path, flags&LookupflagSymlinkFollow != 0)
	if err != nil {
		return Filestat{}, makeErrno(err)
	}
	return makeFilestat(info), ESUCCESS
}

// PathFilestatSetTimes implements path_filestat_set_times. Requires
// RightPathFilestatSetTimes.
func (s *Sandbox) PathFilestatSetTimes(fd Fd, flags Lookupflags, path string, atim, mtim Timestamp, fstflags Fstflags) Errno {
	_, root, errno := s.dirOf(fd, RightPathFilestatSetTimes, 0)
	if errno != ESUCCESS {
		return errno
	}
	follow := flags&LookupflagSymlinkFollow != 0
	info, statErr := root.Stat(path, follow)
	a, m := atim.Time(), mtim.Time()
	if fstflags&FstflagAtimNow != 0 {
		a = time.Now()
	} else if fstflags&FstflagAtim == 0 && statErr == nil {
		a = info.ModTime()
	}
	if fstflags&FstflagMtimNow != 0 {
		m = time.Now()
	} else if fstflags&FstflagMtim == 0 && statErr == nil {
		m = info.ModTime()
	}
	return makeErrno(root.Chtimes(path, follow, a, m))
}

// PathLink implements path_link: two descriptors, two resolutions, two
// right-gates (RightPathLinkSource on oldFd, RightPathLinkTarget on newFd).
func (s *Sandbox) PathLink(oldFd Fd, oldFlags Lookupflags, oldPath string, newFd Fd, newPath string) Errno {
	_, oldRoot, errno := s.dirOf(oldFd, RightPathLinkSource, 0)
	if errno != ESUCCESS {
		return errno
	}
	_, newRoot, errno := s.dirOf(newFd, RightPathLinkTarget, 0)
	if errno != ESUCCESS {
		return errno
	}
	return makeErrno(oldRoot.Link(oldPath, oldFlags&LookupflagSymlinkFollow != 0, newRoot, newPath))
}

// PathReadlink implements path_readlink. Requires RightPathReadlink.
func (s *Sandbox) PathReadlink(fd Fd, path string) (string, Errno) {
	_, root, errno := s.dirOf(fd, RightPathReadlink, 0)
	if errno != ESUCCESS {
		return "", errno
	}
	target, err := root.Readlink(path)
	if err != nil {
		return "", makeErrno(err)
	}
	return target, ESUCCESS
}

// PathRename implements path_rename. Both descriptors need their own
// rights (RightPathRenameSource / RightPathRenameTarget); a rename across
// two different roots fails EXDEV, matching ordinary POSIX rename across
// filesystems.
func (s *Sandbox) PathRename(oldFd Fd, oldPath string, newFd Fd, newPath string) Errno {
	_, oldRoot, errno := s.dirOf(oldFd, RightPathRenameSource, 0)
	if errno != ESUCCESS {
		return errno
	}
	_, newRoot, errno := s.dirOf(newFd, RightPathRenameTarget, 0)
	if errno != ESUCCESS {
		return errno
	}
	if oldRoot != newRoot {
		return EXDEV
	}
	return makeErrno(oldRoot.Rename(oldPath, newPath))
}

// PathSymlink implements path_symlink. oldPath (the link target) is kept
// verbatim and never sandbox-resolved; newPath is resolved within newFd's
// sandbox. Requires RightPathSymlink.
func (s *Sandbox) PathSymlink(oldPath string, newFd Fd, newPath string) Errno {
	_, root, errno := s.dirOf(newFd, RightPathSymlink, 0)
	if errno != ESUCCESS {
		return errno
	}
	return makeErrno(root.Symlink(oldPath, newPath))
}

// pathOpenMode derives the host open flags' read/write component from the
// requested rights.
func pathOpenMode(rightsBase Rights) (flags int) {
	read := rightsBase.Has(RightFdRead) || rightsBase.Has(RightFdReaddir)
	write := rightsBase&(RightFdDatasync|RightFdWrite|RightFdAllocate|RightFdFilestatSetSize) != 0
	switch {
	case read && write:
		return os.O_RDWR
	case write:
		return os.O_WRONLY
	default:
		return os.O_RDONLY
	}
}

// PathOpen implements path_open, deriving the opened descriptor's rights
// from the requested rights and the open flags (OflagCreat widens
// needBase by RightPathCreateFile, OflagTrunc by RightPathFilestatSetSize,
// and so on) before clamping everything to what the directory descriptor
// itself inherits.
func (s *Sandbox) PathOpen(dirFd Fd, dirFlags Lookupflags, path string, oflags Oflags, rightsBase, rightsInheriting Rights, fsFlags Fdflags) (Fd, Errno) {
	flags := pathOpenMode(rightsBase)
	needBase := RightPathOpen
	needInheriting := rightsBase | rightsInheriting

	if oflags&OflagCreat != 0 {
		flags |= os.O_CREATE
		needBase |= RightPathCreateFile
	}
	if oflags&OflagDirectory != 0 {
		// os.O_DIRECTORY doesn't exist in the stdlib's portable flag set;
		// enforced below after opening instead, once the descriptor's
		// filetype is known.
	}
	if oflags&OflagExcl != 0 {
		flags |= os.O_EXCL
	}
	if oflags&OflagTrunc != 0 {
		flags |= os.O_TRUNC
		needBase |= RightPathFilestatSetSize
	}

	if fsFlags&FdflagAppend != 0 {
		flags |= os.O_APPEND
	}
	if fsFlags&FdflagDsync != 0 {
		needInheriting |= RightFdDatasync
	}
	if fsFlags&FdflagNonblock != 0 {
		// Forwarded to the host via fd_fdstat_set_flags post-open; os.OpenFile
		// has no portable O_NONBLOCK.
	}
	if fsFlags&(FdflagRsync|FdflagSync) != 0 {
		flags |= os.O_SYNC
		needInheriting |= RightFdSync
	}
	if flags&(os.O_APPEND|os.O_TRUNC) == 0 && flags&(os.O_WRONLY|os.O_RDWR) != 0 {
		needInheriting |= RightFdSeek
	}

	d, errno := s.table.get(dirFd, needBase, needInheriting)
	if errno != ESUCCESS {
		return 0, errno
	}
	if d.root == nil {
		return 0, ENOTDIR
	}

	followSymlinks := dirFlags&LookupflagSymlinkFollow != 0
	real, err := d.root.Resolve(path, followSymlinks)
	if err != nil {
		return 0, makeErrno(translateResolveErr(err))
	}

	f, err := os.OpenFile(real, flags, 0o666)
	if err != nil {
		return 0, makeErrno(err)
	}
	host := sandboxfs.WrapOSFile(f)

	info, err := host.Stat()
	if err != nil {
		host.Close()
		return 0, makeErrno(err)
	}
	typ := filetypeFromMode(info.Mode())

	if oflags&OflagDirectory != 0 && typ != FiletypeDirectory {
		host.Close()
		return 0, ENOTDIR
	}

	newBase := rightsBase & d.rightsInheriting
	newInheriting := rightsInheriting & d.rightsInheriting
	nd := &descriptor{
		file:             host,
		typ:              typ,
		rightsBase:       newBase,
		rightsInheriting: newInheriting,
		flags:            fsFlags,
		realPath:         real,
	}
	if typ == FiletypeDirectory {
		nd.root = &sandboxfs.Root{MappedPath: d.root.MappedPath, RealPath: real}
	}

	newFd, errno := s.table.insert(nd)
	if errno != ESUCCESS {
		host.Close()
		return 0, errno
	}
	return newFd, ESUCCESS
}

// translateResolveErr maps sandboxfs's own sentinels to the errno makeErrno
// should report, instead of falling through to a generic EIO.
func translateResolveErr(err error) error {
	switch err {
	case sandboxfs.ErrEscapesSandbox:
		return errNotCapable("path escapes sandbox root")
	case sandboxfs.ErrPathTooLong:
		return errNoBufs("resolved path exceeds PATH_MAX_BYTES")
	default:
		return err
	}
}
