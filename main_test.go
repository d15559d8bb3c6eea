package main

import (
	"strings"
	"testing"
)

func TestRootHelpDescribesLedger(t *testing.T) {
	if !strings.Contains(rootCmd.Long, "append-only evidence ledger") {
		t.Errorf("Expected root help to describe the append-only ledger, got: %s", rootCmd.Long)
	}
	if strings.Contains(rootCmd.Long, "tamper-evident") {
		t.Errorf("Root help must not claim tamper evidence: %s", rootCmd.Long)
	}
}
