// Package hunts manages hunt directories under the vault's hunts root.
//
// A hunt is a directory named by its case id holding an evidence/
// subdirectory and a hunt.db ledger. Create is all-or-nothing: the
// directory is made first, then the ledger, and the directory is removed
// again if anything after it fails.
package hunts
