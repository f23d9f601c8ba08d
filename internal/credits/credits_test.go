// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package credits

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/Up14/Lead-Finder/pkg/types"
)

func testLedger(t *testing.T) (*Ledger, types.CreditsConfig) {
	t.Helper()
	cfg := types.CreditsConfig{
		Path:         filepath.Join(t.TempDir(), "api_credits.json"),
		DefaultQuota: 10,
	}
	l, err := Open(cfg, io.Discard)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return l, cfg
}

func TestInitializeAssignsDefaultQuota(t *testing.T) {
	l, _ := testLedger(t)
	l.Initialize("apollo", "hunter")

	acct, ok := l.Info("apollo")
	if !ok {
		t.Fatal("apollo not tracked after Initialize")
	}
	if acct.QuotaLimit != 10 || acct.CallsRemaining != 10 || acct.CallsMade != 0 {
		t.Errorf("unexpected account: %+v", acct)
	}
}

func TestInitializePreservesExistingAccounts(t *testing.T) {
	l, _ := testLedger(t)
	l.Initialize("apollo")
	l.Record("apollo", 4)

	l.Initialize("apollo")

	acct, _ := l.Info("apollo")
	if acct.CallsMade != 4 || acct.CallsRemaining != 6 {
		t.Errorf("re-initialize reset the account: %+v", acct)
	}
}

func TestRecordClampsAtZero(t *testing.T) {
	l, _ := testLedger(t)
	l.Initialize("apollo")

	l.Record("apollo", 15)

	acct, _ := l.Info("apollo")
	if acct.CallsMade != 15 {
		t.Errorf("calls made = %d, want 15", acct.CallsMade)
	}
	if acct.CallsRemaining != 0 {
		t.Errorf("remaining = %d, want clamped to 0", acct.CallsRemaining)
	}
	if l.CanCall("apollo") {
		t.Error("CanCall true with exhausted quota")
	}
}

func TestCanCallUnknownAPI(t *testing.T) {
	l, _ := testLedger(t)
	if !l.CanCall("never-tracked") {
		t.Error("untracked APIs should be callable")
	}
}

func TestUpdateQuotaRecomputesRemaining(t *testing.T) {
	l, _ := testLedger(t)
	l.Initialize("clearbit")
	l.Record("clearbit", 8)

	l.UpdateQuota("clearbit", 20)

	acct, _ := l.Info("clearbit")
	if acct.QuotaLimit != 20 || acct.CallsRemaining != 12 {
		t.Errorf("unexpected account after quota update: %+v", acct)
	}
}

func TestResetRestoresFullBalance(t *testing.T) {
	l, _ := testLedger(t)
	l.Initialize("hunter")
	l.Record("hunter", 7)

	l.Reset("hunter")

	acct, _ := l.Info("hunter")
	if acct.CallsMade != 0 || acct.CallsRemaining != 10 {
		t.Errorf("unexpected account after reset: %+v", acct)
	}
}

func TestLedgerSurvivesReopen(t *testing.T) {
	l, cfg := testLedger(t)
	l.Initialize("apollo")
	l.Record("apollo", 3)

	reopened, err := Open(cfg, io.Discard)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	acct, ok := reopened.Info("apollo")
	if !ok || acct.CallsMade != 3 || acct.CallsRemaining != 7 {
		t.Errorf("state lost across reopen: %+v (tracked %v)", acct, ok)
	}

	names, _ := reopened.All()
	if len(names) != 1 || names[0] != "apollo" {
		t.Errorf("All() = %v, want [apollo]", names)
	}
}
