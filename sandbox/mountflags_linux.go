//go:build linux

package sandbox

// mountAttrFlags mirrors the kernel's mount_setattr(2) MOUNT_ATTR_* bits.
// Only RDONLY, NOEXEC, and NOSUID are ever applied by Lock; the rest are
// modeled for completeness, matching spec behavior that documents the full
// catalogue even though this backend only exercises three of them.
type mountAttrFlags uint64

const (
	mountAttrRDONLY      mountAttrFlags = 0x00000001
	mountAttrNOSUID      mountAttrFlags = 0x00000002
	mountAttrNODEV       mountAttrFlags = 0x00000004
	mountAttrNOEXEC      mountAttrFlags = 0x00000008
	mountAttrATimeMask   mountAttrFlags = 0x00000070
	mountAttrRELATIME    mountAttrFlags = 0x00000000
	mountAttrNOATIME     mountAttrFlags = 0x00000010
	mountAttrSTRICTATIME mountAttrFlags = 0x00000020
	mountAttrNODIRATIME  mountAttrFlags = 0x00000080
	mountAttrIDMAP       mountAttrFlags = 0x00100000
	mountAttrNOSYMFOLLOW mountAttrFlags = 0x00200000
)

// defaultMountFlags is what a path is granted the instant it first appears
// in the allow-list: read-only, no-exec. NOSUID is applied separately, at
// mount time, to every path unconditionally — it is never stored in (or
// cleared from) the per-path map. Subsequent exceptions for the same path
// can only clear bits from here, never set new ones.
const defaultMountFlags = mountAttrRDONLY | mountAttrNOEXEC

// clearedBy returns the bits a given Exception kind clears for the path it
// names. Networking/Environment/FullEnvironment never touch the map.
func clearedBy(k kind) mountAttrFlags {
	switch k {
	case kindWriteAndRead:
		return mountAttrRDONLY
	case kindExecuteAndRead:
		return mountAttrNOEXEC
	default:
		return 0
	}
}
