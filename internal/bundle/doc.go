// Package bundle packs a hunt directory into a portable zip archive and
// unpacks such archives into a new hunt directory.
//
// An archive mirrors the hunt tree verbatim: the ledger file and every
// encrypted evidence payload, at slash-separated paths relative to the
// hunt root. It carries no metadata of its own. On import the hunt id is
// taken from the archive's base file name.
//
// The packager never sees key material. It moves ciphertext and the ledger
// as opaque bytes.
//
// Import is the attack surface. Every entry name goes through SafeJoin
// before anything touches the disk; entries that would land outside the new
// hunt directory (absolute paths, volume names, ".." segments) and symlink
// entries are skipped and reported in ImportResult.Skipped. Extraction
// happens in a hidden staging directory that is renamed into place only
// after every entry has been written, so a failed import leaves nothing
// behind.
package bundle
