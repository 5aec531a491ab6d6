package store

import (
	"path/filepath"
	"sync"

	"ciphera/internal/domain"
)

const (
	preKeysFile    = "prekeys.json"
	oneTimeFile    = "onetime_keys.json"
	preKeyMetaFile = "prekey_meta.json"
)

// PreKeyFileStore persists the published pre-key (KEM+ECDH pair) and
// one-time keys to disk.
type PreKeyFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewPreKeyFileStore returns a PreKeyFileStore rooted at dir.
func NewPreKeyFileStore(dir string) *PreKeyFileStore {
	return &PreKeyFileStore{dir: dir}
}

// Internal record types.
type preKeyRecord struct {
	KEMPriv  domain.KEMPrivate    `json:"kem_priv"`
	KEMPub   domain.KEMPublic     `json:"kem_pub"`
	ECDHPriv domain.X25519Private `json:"ecdh_priv"`
	ECDHPub  domain.X25519Public  `json:"ecdh_pub"`
	Sig      []byte               `json:"sig"`
}

type oneTimeRecord struct {
	Priv domain.X25519Private `json:"priv"`
	Pub  domain.X25519Public  `json:"pub"`
}

type preKeyMeta struct {
	CurrentPreKeyID domain.SignedPreKeyID `json:"current_prekey_id"`
}

// SavePreKey stores a pre-key (KEM keypair + ECDH keypair, jointly
// signed) by id.
func (s *PreKeyFileStore) SavePreKey(
	id domain.SignedPreKeyID,
	kemPriv domain.KEMPrivate,
	kemPub domain.KEMPublic,
	ecdhPriv domain.X25519Private,
	ecdhPub domain.X25519Public,
	sig []byte,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, preKeysFile)
	m := map[domain.SignedPreKeyID]preKeyRecord{}
	_ = readJSON(path, &m)
	m[id] = preKeyRecord{KEMPriv: kemPriv, KEMPub: kemPub, ECDHPriv: ecdhPriv, ECDHPub: ecdhPub, Sig: sig}
	return writeJSON(path, m, 0o600)
}

// LoadPreKey retrieves a pre-key by id.
func (s *PreKeyFileStore) LoadPreKey(
	id domain.SignedPreKeyID,
) (
	kemPriv domain.KEMPrivate,
	kemPub domain.KEMPublic,
	ecdhPriv domain.X25519Private,
	ecdhPub domain.X25519Public,
	sig []byte,
	ok bool,
	err error,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, preKeysFile)
	m := map[domain.SignedPreKeyID]preKeyRecord{}
	if err = readJSON(path, &m); err != nil {
		return kemPriv, kemPub, ecdhPriv, ecdhPub, nil, false, err
	}
	r, ok := m[id]
	if !ok {
		return kemPriv, kemPub, ecdhPriv, ecdhPub, nil, false, nil
	}
	return r.KEMPriv, r.KEMPub, r.ECDHPriv, r.ECDHPub, r.Sig, true, nil
}

// SaveOneTimeKeys merges the provided one-time key pairs into the store.
func (s *PreKeyFileStore) SaveOneTimeKeys(pairs []domain.OneTimeKeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, oneTimeFile)
	m := map[domain.OneTimePreKeyID]oneTimeRecord{}
	_ = readJSON(path, &m)
	for _, p := range pairs {
		m[p.ID] = oneTimeRecord{Priv: p.Priv, Pub: p.Pub}
	}
	return writeJSON(path, m, 0o600)
}

// ConsumeOneTimeKey removes and returns a single one-time key by id.
func (s *PreKeyFileStore) ConsumeOneTimeKey(
	id domain.OneTimePreKeyID,
) (
	priv domain.X25519Private,
	pub domain.X25519Public,
	ok bool,
	err error,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, oneTimeFile)
	m := map[domain.OneTimePreKeyID]oneTimeRecord{}
	if err = readJSON(path, &m); err != nil {
		return priv, pub, false, err
	}
	r, ok := m[id]
	if !ok {
		return priv, pub, false, nil
	}
	delete(m, id)
	if err = writeJSON(path, m, 0o600); err != nil {
		return priv, pub, false, err
	}
	return r.Priv, r.Pub, true, nil
}

// ListOneTimeKeyPublics exposes only the public halves for bundling.
func (s *PreKeyFileStore) ListOneTimeKeyPublics() ([]domain.OneTimeKeyPublic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, oneTimeFile)
	m := map[domain.OneTimePreKeyID]oneTimeRecord{}
	if err := readJSON(path, &m); err != nil {
		return nil, err
	}

	out := make([]domain.OneTimeKeyPublic, 0, len(m))
	for id, r := range m {
		out = append(out, domain.OneTimeKeyPublic{ID: id, Pub: r.Pub})
	}
	return out, nil
}

// SetCurrentPreKeyID records which pre-key id is current.
func (s *PreKeyFileStore) SetCurrentPreKeyID(id domain.SignedPreKeyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, preKeyMetaFile)
	meta := preKeyMeta{CurrentPreKeyID: id}
	return writeJSON(path, meta, 0o600)
}

// CurrentPreKeyID returns the recorded current pre-key id.
func (s *PreKeyFileStore) CurrentPreKeyID() (domain.SignedPreKeyID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, preKeyMetaFile)
	var meta preKeyMeta
	if err := readJSON(path, &meta); err != nil {
		return "", false, err
	}
	if meta.CurrentPreKeyID == "" {
		return "", false, nil
	}
	return meta.CurrentPreKeyID, true, nil
}

// Compile-time assertion that PreKeyFileStore implements domain.PreKeyStore.
var _ domain.PreKeyStore = (*PreKeyFileStore)(nil)
