package wasicore

import (
	"encoding/binary"
	"io/fs"
	"time"
)

// Fd is a guest-facing file descriptor number.
type Fd uint32

// Filetype classifies the kind of object a descriptor refers to.
type Filetype uint8

const (
	FiletypeUnknown Filetype = iota
	FiletypeBlockDevice
	FiletypeCharacterDevice
	FiletypeDirectory
	FiletypeRegularFile
	FiletypeSocketDgram
	FiletypeSocketStream
	FiletypeSymbolicLink
)

func filetypeFromMode(mode fs.FileMode) Filetype {
	switch {
	case mode&fs.ModeSymlink != 0:
		return FiletypeSymbolicLink
	case mode.IsDir():
		return FiletypeDirectory
	case mode&fs.ModeDevice != 0:
		if mode&fs.ModeCharDevice != 0 {
			return FiletypeCharacterDevice
		}
		return FiletypeBlockDevice
	case mode&fs.ModeSocket != 0:
		return FiletypeSocketStream
	case mode.IsRegular():
		return FiletypeRegularFile
	default:
		return FiletypeUnknown
	}
}

// Fdflags are the openness flags of a descriptor (fd_fdstat_get/set_flags).
type Fdflags uint16

const (
	FdflagAppend Fdflags = 1 << iota
	FdflagDsync
	FdflagNonblock
	FdflagRsync
	FdflagSync
)

// Oflags are path_open's creation/behavior flags.
type Oflags uint16

const (
	OflagCreat Oflags = 1 << iota
	OflagDirectory
	OflagExcl
	OflagTrunc
)

// Lookupflags controls symlink-follow behavior during path resolution.
type Lookupflags uint32

const LookupflagSymlinkFollow Lookupflags = 1

// Fstflags selects which timestamp fields a *_filestat_set_times call
// updates, and whether to use the supplied value or "now".
type Fstflags uint16

const (
	FstflagAtim Fstflags = 1 << iota
	FstflagAtimNow
	FstflagMtim
	FstflagMtimNow
)

// Whence is the reference point for fd_seek.
type Whence uint8

const (
	WhenceSet Whence = iota
	WhenceCur
	WhenceEnd
)

// Timestamp is nanoseconds since the Unix epoch.
type Timestamp uint64

func makeTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return 0
	}
	return Timestamp(t.UnixNano())
}

func (t Timestamp) Time() time.Time { return time.Unix(0, int64(t)) }

// Dircookie is an opaque resume position into a directory stream, as
// returned by a Dirent's Next field.
type Dircookie uint64

// DircookieStart is the cookie that begins a fresh directory listing.
const DircookieStart Dircookie = 0

type (
	Filesize  uint64
	Filedelta int64
	Device    uint64
	Inode     uint64
	Linkcount uint64
)

// Fdstat mirrors the 24-byte wire record returned by fd_fdstat_get.
type Fdstat struct {
	Filetype           Filetype
	Flags              Fdflags
	RightsBase         Rights
	RightsInheriting   Rights
}

// Marshal encodes fs to its little-endian wire layout:
// {u8 type, 1 pad, u16 flags, 4 pad, u64 rights_base, u64 rights_inheriting}.
func (fs Fdstat) Marshal() [24]byte {
	var b [24]byte
	b[0] = byte(fs.Filetype)
	binary.LittleEndian.PutUint16(b[2:4], uint16(fs.Flags))
	binary.LittleEndian.PutUint64(b[8:16], uint64(fs.RightsBase))
	binary.LittleEndian.PutUint64(b[16:24], uint64(fs.RightsInheriting))
	return b
}

func (fs *Fdstat) Unmarshal(b [24]byte) {
	fs.Filetype = Filetype(b[0])
	fs.Flags = Fdflags(binary.LittleEndian.Uint16(b[2:4]))
	fs.RightsBase = Rights(binary.LittleEndian.Uint64(b[8:16]))
	fs.RightsInheriting = Rights(binary.LittleEndian.Uint64(b[16:24]))
}

// Filestat mirrors the upstream WASI filestat record.
type Filestat struct {
	Dev   Device
	Ino   Inode
	Type  Filetype
	Nlink Linkcount
	Size  Filesize
	Atim  Timestamp
	Mtim  Timestamp
	Ctim  Timestamp
}

// Marshal encodes fs to the 64-byte little-endian wire layout.
func (fs Filestat) Marshal() [64]byte {
	var b [64]byte
	binary.LittleEndian.PutUint64(b[0:8], uint64(fs.Dev))
	binary.LittleEndian.PutUint64(b[8:16], uint64(fs.Ino))
	b[16] = byte(fs.Type)
	binary.LittleEndian.PutUint64(b[24:32], uint64(fs.Nlink))
	binary.LittleEndian.PutUint64(b[32:40], uint64(fs.Size))
	binary.LittleEndian.PutUint64(b[40:48], uint64(fs.Atim))
	binary.LittleEndian.PutUint64(b[48:56], uint64(fs.Mtim))
	binary.LittleEndian.PutUint64(b[56:64], uint64(fs.Ctim))
	return b
}

func (fs *Filestat) Unmarshal(b [64]byte) {
	fs.Dev = Device(binary.LittleEndian.Uint64(b[0:8]))
	fs.Ino = Inode(binary.LittleEndian.Uint64(b[8:16]))
	fs.Type = Filetype(b[16])
	fs.Nlink = Linkcount(binary.LittleEndian.Uint64(b[24:32]))
	fs.Size = Filesize(binary.LittleEndian.Uint64(b[32:40]))
	fs.Atim = Timestamp(binary.LittleEndian.Uint64(b[40:48]))
	fs.Mtim = Timestamp(binary.LittleEndian.Uint64(b[48:56]))
	fs.Ctim = Timestamp(binary.LittleEndian.Uint64(b[56:64]))
}

func makeFilestat(info fs.FileInfo) Filestat {
	return Filestat{
		Type:  filetypeFromMode(info.Mode()),
		Size:  Filesize(info.Size()),
		Mtim:  makeTimestamp(info.ModTime()),
		Nlink: 1,
	}
}

// Dirent is the fixed 24-byte header written by fd_readdir before each
// entry's name bytes.
type Dirent struct {
	Next    Dircookie
	Ino     Inode
	Namelen uint32
	Type    Filetype
}

// Size returns the total wire size of the entry, header plus name.
func (d Dirent) Size() int { return 24 + int(d.Namelen) }

func (d Dirent) Marshal() [24]byte {
	var b [24]byte
	binary.LittleEndian.PutUint64(b[0:8], uint64(d.Next))
	binary.LittleEndian.PutUint64(b[8:16], uint64(d.Ino))
	binary.LittleEndian.PutUint32(b[16:20], d.Namelen)
	b[20] = byte(d.Type)
	return b
}

func (d *Dirent) Unmarshal(b [24]byte) {
	d.Next = Dircookie(binary.LittleEndian.Uint64(b[0:8]))
	d.Ino = Inode(binary.LittleEndian.Uint64(b[8:16]))
	d.Namelen = binary.LittleEndian.Uint32(b[16:20])
	d.Type = Filetype(b[20])
}

// Prestat mirrors the 8-byte record returned by fd_prestat_get.
type Prestat struct {
	Type    Filetype
	NameLen uint32
}

func (p Prestat) Marshal() [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint32(b[0:4], uint32(p.Type))
	binary.LittleEndian.PutUint32(b[4:8], p.NameLen)
	return b
}

// Iovec is a single (buf, buf_len) pair read from guest memory.
type Iovec struct {
	Buf    uint32
	BufLen uint32
}

func (v Iovec) Marshal() [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint32(b[0:4], v.Buf)
	binary.LittleEndian.PutUint32(b[4:8], v.BufLen)
	return b
}

func (v *Iovec) Unmarshal(b [8]byte) {
	v.Buf = binary.LittleEndian.Uint32(b[0:4])
	v.BufLen = binary.LittleEndian.Uint32(b[4:8])
}
