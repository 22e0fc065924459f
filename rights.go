package wasicore

// Rights is a bitmask of capabilities a descriptor may exercise directly
// (rights_base) or pass on to descriptors opened through it
// (rights_inheriting). Once narrowed on a live descriptor, a bit can never
// be set again (see Table.setRights).
type Rights uint64

const (
	RightFdDatasync Rights = 1 << iota
	RightFdRead
	RightFdSeek
	RightFdFdstatSetFlags
	RightFdSync
	RightFdTell
	RightFdWrite
	RightFdAdvise
	RightFdAllocate
	RightPathCreateDirectory
	RightPathCreateFile
	RightPathLinkSource
	RightPathLinkTarget
	RightPathOpen
	RightFdReaddir
	RightPathReadlink
	RightPathRenameSource
	RightPathRenameTarget
	RightPathFilestatGet
	RightPathFilestatSetSize
	RightPathFilestatSetTimes
	RightFdFilestatGet
	RightFdFilestatSetSize
	RightFdFilestatSetTimes
	RightPathSymlink
	RightPathRemoveDirectory
	RightPathUnlinkFile
	RightPollFdReadwrite
	RightSockShutdown
)

// Has reports whether every bit set in want is also set in r.
func (r Rights) Has(want Rights) bool { return r&want == want }

// directoryBaseRights are granted to every preopen and to any descriptor
// opened as a directory.
const directoryBaseRights = RightFdSeek | RightFdTell | RightFdFilestatGet |
	RightPathOpen | RightPathCreateDirectory | RightPathCreateFile |
	RightPathLinkSource | RightPathLinkTarget | RightPathFilestatGet |
	RightPathFilestatSetSize | RightPathFilestatSetTimes |
	RightPathReadlink | RightPathRenameSource | RightPathRenameTarget |
	RightPathSymlink | RightPathRemoveDirectory | RightPathUnlinkFile |
	RightFdReaddir

// directoryInheritingRights is the maximal set a preopen directory passes
// down to files/directories opened through it.
const directoryInheritingRights = directoryBaseRights |
	RightFdDatasync | RightFdRead | RightFdWrite | RightFdAdvise |
	RightFdAllocate | RightFdFdstatSetFlags | RightFdSync |
	RightFdFilestatSetSize | RightFdFilestatSetTimes | RightPollFdReadwrite
