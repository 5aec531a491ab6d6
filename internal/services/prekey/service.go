package prekey

import (
	"errors"
	"fmt"
	"time"

	"ciphera/internal/crypto"
	"ciphera/internal/domain"
)

// errNoPreKey is returned when no pre-key has been published yet.
var errNoPreKey = errors.New("prekey: no current pre-key available")

// Service manages the published pre-key (KEM+ECDH pair) and one-time
// keys, and assembles the public bundle a peer fetches to start a
// handshake.
type Service struct {
	ids domain.IdentityStore
	ps  domain.PreKeyStore
	bs  domain.PreKeyBundleStore
}

// New constructs a pre-key service backed by the given stores.
func New(ids domain.IdentityStore, ps domain.PreKeyStore, bs domain.PreKeyBundleStore) *Service {
	return &Service{ids: ids, ps: ps, bs: bs}
}

// GenerateAndStorePreKeys mints a fresh KEM+ECDH pre-key (jointly
// signed by the identity's Ed25519 key), marks it current, generates n
// one-time keys, and returns the resulting public bundle.
func (s *Service) GenerateAndStorePreKeys(passphrase string, oneTimeCount int) (domain.PreKeyBundle, error) {
	id, err := s.ids.LoadIdentity(passphrase)
	if err != nil {
		return domain.PreKeyBundle{}, err
	}

	kemPriv, kemPub, err := crypto.KEMGenerate()
	if err != nil {
		return domain.PreKeyBundle{}, err
	}
	ecdhPriv, ecdhPub, err := crypto.GenerateX25519()
	if err != nil {
		return domain.PreKeyBundle{}, err
	}

	preKeyID := domain.SignedPreKeyID(fmt.Sprintf("prekey-%d", time.Now().UnixNano()))
	sigMsg := make([]byte, 0, len(kemPub)+32)
	sigMsg = append(sigMsg, kemPub...)
	sigMsg = append(sigMsg, ecdhPub[:]...)
	sig := crypto.SignEd25519(id.EdPriv, sigMsg)

	if err := s.ps.SavePreKey(preKeyID, kemPriv, kemPub, ecdhPriv, ecdhPub, sig); err != nil {
		return domain.PreKeyBundle{}, err
	}
	if err := s.ps.SetCurrentPreKeyID(preKeyID); err != nil {
		return domain.PreKeyBundle{}, err
	}

	pairs := make([]domain.OneTimeKeyPair, 0, oneTimeCount)
	for i := 0; i < oneTimeCount; i++ {
		priv, pub, err := crypto.GenerateX25519()
		if err != nil {
			return domain.PreKeyBundle{}, err
		}
		otID := domain.OneTimePreKeyID(fmt.Sprintf("onetime-%d-%d", time.Now().UnixNano(), i))
		pairs = append(pairs, domain.OneTimeKeyPair{ID: otID, Priv: priv, Pub: pub})
	}
	if len(pairs) > 0 {
		if err := s.ps.SaveOneTimeKeys(pairs); err != nil {
			return domain.PreKeyBundle{}, err
		}
	}

	return domain.PreKeyBundle{
		PreKeyID:       preKeyID,
		IdentitySigKey: id.EdPub,
		KEMPublic:      kemPub,
		ECDHPublic:     ecdhPub,
		Signature:      sig,
	}, nil
}

// LoadPreKeyBundle assembles the public bundle from the current
// pre-key and one of the unconsumed one-time keys (if any), caches it,
// and returns it.
func (s *Service) LoadPreKeyBundle(passphrase string, username domain.Username) (domain.PreKeyBundle, error) {
	id, err := s.ids.LoadIdentity(passphrase)
	if err != nil {
		return domain.PreKeyBundle{}, err
	}

	preKeyID, ok, err := s.ps.CurrentPreKeyID()
	if err != nil {
		return domain.PreKeyBundle{}, err
	}
	if !ok {
		return domain.PreKeyBundle{}, errNoPreKey
	}

	_, kemPub, _, ecdhPub, sig, found, err := s.ps.LoadPreKey(preKeyID)
	if err != nil {
		return domain.PreKeyBundle{}, err
	}
	if !found {
		return domain.PreKeyBundle{}, errNoPreKey
	}

	oneTime, err := s.ps.ListOneTimeKeyPublics()
	if err != nil {
		return domain.PreKeyBundle{}, err
	}

	bundle := domain.PreKeyBundle{
		Username:       username,
		PreKeyID:       preKeyID,
		IdentitySigKey: id.EdPub,
		KEMPublic:      kemPub,
		ECDHPublic:     ecdhPub,
		Signature:      sig,
	}
	if len(oneTime) > 0 {
		bundle.OneTimeKey = &oneTime[0]
	}

	if err := s.bs.SavePreKeyBundle(bundle); err != nil {
		return domain.PreKeyBundle{}, err
	}
	return bundle, nil
}

// Compile-time assertion that Service implements domain.PreKeyService.
var _ domain.PreKeyService = (*Service)(nil)
