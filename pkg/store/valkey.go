package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	valkeylib "github.com/valkey-io/valkey-go"
)

// DefaultConnectTimeout bounds how long NewValkey waits for the initial
// ping before giving up.
const DefaultConnectTimeout = 5 * time.Second

// ValkeyConfig configures a Valkey-backed Store.
type ValkeyConfig struct {
	Address        string
	Password       string
	DB             int
	KeyPrefix      string
	ConnectTimeout time.Duration // defaults to DefaultConnectTimeout
}

// Valkey is a Store backed by github.com/valkey-io/valkey-go, used when
// UNIVCONV_VALKEY_ADDRESS is configured instead of the in-process Memory.
type Valkey struct {
	inner     valkeylib.Client
	keyPrefix string
}

// NewValkey connects to Valkey and verifies the connection with a ping
// before returning. The caller is responsible for calling Close.
func NewValkey(cfg ValkeyConfig) (*Valkey, error) {
	opts := valkeylib.ClientOption{
		InitAddress: []string{cfg.Address},
		SelectDB:    cfg.DB,
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	inner, err := valkeylib.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("store: failed to create valkey client: %w", err)
	}

	timeout := cfg.ConnectTimeout
	if timeout == 0 {
		timeout = DefaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := inner.Do(ctx, inner.B().Ping().Build()).Error(); err != nil {
		inner.Close()
		return nil, fmt.Errorf("store: failed to ping valkey (timeout %v): %w", timeout, err)
	}

	prefix := cfg.KeyPrefix
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &Valkey{inner: inner, keyPrefix: prefix}, nil
}

// Close releases the underlying connection.
func (v *Valkey) Close() {
	if v.inner != nil {
		v.inner.Close()
	}
}

func (v *Valkey) prefixed(key string) string {
	return v.keyPrefix + key
}

func (v *Valkey) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp := v.inner.Do(ctx, v.inner.B().Get().Key(v.prefixed(key)).Build())
	if valkeylib.IsValkeyNil(resp.Error()) {
		return nil, false, nil
	}
	bytesVal, err := resp.AsBytes()
	if err != nil {
		return nil, false, err
	}
	return bytesVal, true, nil
}

func (v *Valkey) Set(ctx context.Context, key string, value []byte) error {
	return v.inner.Do(ctx, v.inner.B().Set().Key(v.prefixed(key)).Value(string(value)).Build()).Error()
}

func (v *Valkey) Remove(ctx context.Context, key string) error {
	return v.inner.Do(ctx, v.inner.B().Del().Key(v.prefixed(key)).Build()).Error()
}
