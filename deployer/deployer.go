// Package deployer deterministically derives and registers launched token
// addresses. The launch flow computes the address first, creates the pool
// under it, then deploys, so the pool id never depends on deployment order.
package deployer

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"

	"cosmossdk.io/errors"

	"github.com/moonforge-labs/launchpad/launch/types"
)

const codespace = "deployer"

var ErrAlreadyDeployed = errors.Register(codespace, 2, "token already deployed")

// Deployer derives token addresses from (meta, salt) and tracks what it has
// deployed. Derivation is pure; two callers always agree on the address.
type Deployer struct {
	mu       sync.Mutex
	deployed map[string]types.TokenMeta
}

// New returns an empty deployer.
func New() *Deployer {
	return &Deployer{deployed: make(map[string]types.TokenMeta)}
}

// ComputeAddress derives the address DeployToken will produce for the same
// meta and salt.
func (d *Deployer) ComputeAddress(meta types.TokenMeta, salt []byte) string {
	h := sha256.New()
	h.Write([]byte(meta.Name))
	h.Write([]byte{0})
	h.Write([]byte(meta.Symbol))
	h.Write(binary.BigEndian.AppendUint16(nil, uint16(meta.Decimals)))
	h.Write(salt)
	sum := h.Sum(nil)
	return "0x" + hex.EncodeToString(sum[:20])
}

// DeployToken registers the token at its derived address. Deploying the same
// meta and salt twice fails.
func (d *Deployer) DeployToken(_ context.Context, meta types.TokenMeta, salt []byte) (string, error) {
	addr := d.ComputeAddress(meta, salt)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.deployed[addr]; ok {
		return "", ErrAlreadyDeployed.Wrapf("address %s", addr)
	}
	d.deployed[addr] = meta
	return addr, nil
}

// Meta returns the deployment descriptor for addr, if deployed.
func (d *Deployer) Meta(addr string) (types.TokenMeta, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	meta, ok := d.deployed[addr]
	return meta, ok
}
