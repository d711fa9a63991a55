package treasury

import (
	"testing"

	"nhbridge/events"
)

type fakeCap struct {
	supply uint64
}

func (f *fakeCap) Mint(amount uint64) (Token, error) {
	f.supply += amount
	return Token{TypeName: "USDT", Amount: amount}, nil
}

func (f *fakeCap) Burn(token Token) error {
	f.supply -= token.Amount
	return nil
}

func (f *fakeCap) Supply() (uint64, error) {
	return f.supply, nil
}

func TestRegisterAndAddNewToken(t *testing.T) {
	rec := &events.Recorder{}
	tr := New(rec)
	cap := &fakeCap{}
	if err := tr.RegisterForeignToken("USDT", 6, cap); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := tr.AddNewToken("USDT", 7, 100_000_000); err != nil {
		t.Fatalf("add new token: %v", err)
	}
	meta, err := tr.Metadata("USDT")
	if err != nil {
		t.Fatalf("metadata: %v", err)
	}
	if meta.ID != 7 || meta.DecimalMultiplier != 1_000_000 || meta.NotionalValueUSD8dp != 100_000_000 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if len(rec.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.Events))
	}
	if _, ok := rec.Events[0].(events.NewToken); !ok {
		t.Fatalf("expected NewToken event, got %T", rec.Events[0])
	}
}

func TestRegisterForeignTokenRejectsNonZeroSupply(t *testing.T) {
	tr := New(nil)
	if err := tr.RegisterForeignToken("USDT", 6, &fakeCap{supply: 1}); err == nil {
		t.Fatalf("expected non-zero supply error")
	}
}

func TestAddNewTokenRejectsZeroPrice(t *testing.T) {
	tr := New(nil)
	cap := &fakeCap{}
	if err := tr.RegisterForeignToken("USDT", 6, cap); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := tr.AddNewToken("USDT", 1, 0); err == nil {
		t.Fatalf("expected zero notional price error")
	}
}

func TestMintBurnRoundTrip(t *testing.T) {
	tr := New(nil)
	cap := &fakeCap{}
	if err := tr.RegisterForeignToken("USDT", 6, cap); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := tr.AddNewToken("USDT", 1, 100_000_000); err != nil {
		t.Fatalf("add new token: %v", err)
	}
	tok, err := tr.Mint("USDT", 500)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if tok.Amount != 500 {
		t.Fatalf("unexpected minted amount: %d", tok.Amount)
	}
	if err := tr.Burn(tok); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if cap.supply != 0 {
		t.Fatalf("expected supply back to 0, got %d", cap.supply)
	}
}

func TestUnsupportedTokenTypeLookupsFail(t *testing.T) {
	tr := New(nil)
	if _, err := tr.Metadata("DOES_NOT_EXIST"); err == nil {
		t.Fatalf("expected unsupported token type error")
	}
}

func TestUpdateAssetNotionalPriceEmitsEvent(t *testing.T) {
	rec := &events.Recorder{}
	tr := New(rec)
	cap := &fakeCap{}
	if err := tr.RegisterForeignToken("USDT", 6, cap); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := tr.AddNewToken("USDT", 1, 100_000_000); err != nil {
		t.Fatalf("add new token: %v", err)
	}
	if err := tr.UpdateAssetNotionalPrice(1, 200_000_000); err != nil {
		t.Fatalf("update price: %v", err)
	}
	meta, _ := tr.Metadata("USDT")
	if meta.NotionalValueUSD8dp != 200_000_000 {
		t.Fatalf("unexpected price: %d", meta.NotionalValueUSD8dp)
	}
	if len(rec.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(rec.Events))
	}
	if _, ok := rec.Events[1].(events.UpdateTokenPrice); !ok {
		t.Fatalf("expected UpdateTokenPrice event, got %T", rec.Events[1])
	}
}
