package committee

import (
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"nhbridge/bridgecrypto"
	"nhbridge/chainregistry"
	"nhbridge/crypto"
	"nhbridge/events"
	"nhbridge/messages"
)

type signer struct {
	addr       crypto.Address
	privKey    *crypto.PrivateKey
	compressed []byte
}

func newSigner(t *testing.T) signer {
	t.Helper()
	priv, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	compressed := ethcrypto.CompressPubkey(priv.PubKey().PublicKey)
	return signer{addr: priv.PubKey().Address(), privKey: priv, compressed: compressed}
}

func (s signer) sign(t *testing.T, preimage []byte) []byte {
	t.Helper()
	hash := ethcrypto.Keccak256(preimage)
	sig, err := ethcrypto.Sign(hash, s.privKey.PrivateKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return sig
}

func setupCommittee(t *testing.T, members []signer, powers map[string]uint32) *Committee {
	t.Helper()
	pairs := make([]ValidatorPower, 0, len(members))
	for _, m := range members {
		pairs = append(pairs, ValidatorPower{Address: m.addr, VotingPowerBps: powers[m.addr.String()]})
	}
	activeSet := NewStaticValidatorSet(pairs)
	admin := members[0].addr
	c := New(admin, activeSet, nil)
	for _, m := range members {
		if err := c.Register(m.addr, m.compressed, "https://example.invalid"); err != nil {
			t.Fatalf("register %s: %v", m.addr, err)
		}
	}
	if !c.TryCreateNextCommittee(1) {
		t.Fatalf("expected committee creation to succeed")
	}
	return c
}

func TestRegisterRejectsNonActiveValidator(t *testing.T) {
	outsider := newSigner(t)
	activeSet := NewStaticValidatorSet(nil)
	c := New(outsider.addr, activeSet, nil)
	if err := c.Register(outsider.addr, outsider.compressed, "url"); err == nil {
		t.Fatalf("expected not-active-validator error")
	}
}

func TestRegisterRejectsDuplicatePubkey(t *testing.T) {
	a := newSigner(t)
	b := newSigner(t)
	powers := []ValidatorPower{{Address: a.addr, VotingPowerBps: 5000}, {Address: b.addr, VotingPowerBps: 5000}}
	c := New(a.addr, NewStaticValidatorSet(powers), nil)
	if err := c.Register(a.addr, a.compressed, "url-a"); err != nil {
		t.Fatalf("register a: %v", err)
	}
	if err := c.Register(b.addr, a.compressed, "url-b"); err == nil {
		t.Fatalf("expected duplicate pubkey error")
	}
}

func TestTryCreateNextCommitteeRequiresParticipation(t *testing.T) {
	a := newSigner(t)
	powers := []ValidatorPower{{Address: a.addr, VotingPowerBps: 1000}}
	c := New(a.addr, NewStaticValidatorSet(powers), nil)
	if err := c.Register(a.addr, a.compressed, "url"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if c.TryCreateNextCommittee(5001) {
		t.Fatalf("expected no-op below min participation")
	}
	if len(c.Members()) != 0 {
		t.Fatalf("members must remain empty")
	}
}

func TestVerifySignaturesMeetsThreshold(t *testing.T) {
	a := newSigner(t)
	b := newSigner(t)
	powers := map[string]uint32{a.addr.String(): 1700, b.addr.String(): 1700}
	c := setupCommittee(t, []signer{a, b}, powers)

	msg, err := messages.NewTokenTransferMessage(0, chainregistry.StarcoinDevnet, messages.TokenTransferPayload{
		Sender: make([]byte, 32), TargetChain: chainregistry.EthSepolia, Target: make([]byte, 20), TokenType: 1, Amount: 1,
	})
	if err != nil {
		t.Fatalf("construct message: %v", err)
	}
	preimage := messages.SigningPreimage(msg)
	sigs := [][]byte{a.sign(t, preimage), b.sign(t, preimage)}
	if err := c.VerifySignatures(msg, sigs); err != nil {
		t.Fatalf("expected signatures to clear threshold: %v", err)
	}
}

func TestVerifySignaturesBelowThresholdAborts(t *testing.T) {
	a := newSigner(t)
	b := newSigner(t)
	powers := map[string]uint32{a.addr.String(): 1000, b.addr.String(): 1000}
	c := setupCommittee(t, []signer{a, b}, powers)

	msg, err := messages.NewTokenTransferMessage(0, chainregistry.StarcoinDevnet, messages.TokenTransferPayload{
		Sender: make([]byte, 32), TargetChain: chainregistry.EthSepolia, Target: make([]byte, 20), TokenType: 1, Amount: 1,
	})
	if err != nil {
		t.Fatalf("construct message: %v", err)
	}
	preimage := messages.SigningPreimage(msg)
	sigs := [][]byte{a.sign(t, preimage), b.sign(t, preimage)}
	if err := c.VerifySignatures(msg, sigs); err == nil {
		t.Fatalf("expected below-threshold error")
	}
}

func TestVerifySignaturesRejectsDuplicateSigner(t *testing.T) {
	a := newSigner(t)
	b := newSigner(t)
	powers := map[string]uint32{a.addr.String(): 5000, b.addr.String(): 5000}
	c := setupCommittee(t, []signer{a, b}, powers)

	msg, err := messages.NewTokenTransferMessage(0, chainregistry.StarcoinDevnet, messages.TokenTransferPayload{
		Sender: make([]byte, 32), TargetChain: chainregistry.EthSepolia, Target: make([]byte, 20), TokenType: 1, Amount: 1,
	})
	if err != nil {
		t.Fatalf("construct message: %v", err)
	}
	preimage := messages.SigningPreimage(msg)
	sig := a.sign(t, preimage)
	if err := c.VerifySignatures(msg, [][]byte{sig, sig}); err == nil {
		t.Fatalf("expected duplicate signature error")
	}
}

func TestExecuteBlocklistTogglesMatchingMember(t *testing.T) {
	a := newSigner(t)
	powers := map[string]uint32{a.addr.String(): 10000}
	c := setupCommittee(t, []signer{a}, powers)

	evmAddr, err := bridgecrypto.EVMAddress(a.compressed)
	if err != nil {
		t.Fatalf("derive evm address: %v", err)
	}
	rec := &events.Recorder{}
	c.SetEmitter(rec)
	if err := c.ExecuteBlocklist(messages.BlocklistTypeBlock, [][20]byte{evmAddr}); err != nil {
		t.Fatalf("execute blocklist: %v", err)
	}
	members := c.Members()
	if len(members) != 1 || !members[0].Blocklisted {
		t.Fatalf("expected member to be blocklisted: %+v", members)
	}
	if len(rec.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.Events))
	}
}

func TestExecuteBlocklistRejectsUnknownAddress(t *testing.T) {
	a := newSigner(t)
	powers := map[string]uint32{a.addr.String(): 10000}
	c := setupCommittee(t, []signer{a}, powers)
	var unknown [20]byte
	if err := c.ExecuteBlocklist(messages.BlocklistTypeBlock, [][20]byte{unknown}); err == nil {
		t.Fatalf("expected unknown blocklist target error")
	}
}

func TestExecuteBlocklistRejectsMixedListWithoutPartialMutation(t *testing.T) {
	a := newSigner(t)
	b := newSigner(t)
	powers := map[string]uint32{a.addr.String(): 5000, b.addr.String(): 5000}
	c := setupCommittee(t, []signer{a, b}, powers)

	known, err := bridgecrypto.EVMAddress(a.compressed)
	if err != nil {
		t.Fatalf("derive evm address: %v", err)
	}
	var unknown [20]byte

	if err := c.ExecuteBlocklist(messages.BlocklistTypeBlock, [][20]byte{known, unknown}); err == nil {
		t.Fatalf("expected unknown blocklist target error")
	}

	for _, m := range c.Members() {
		if m.Blocklisted {
			t.Fatalf("expected no member blocklisted after a rejected mixed-list call, got %+v", m)
		}
	}
}
