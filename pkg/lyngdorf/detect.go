package lyngdorf

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/avcontrol/lyngdorf/internal/connection"
	"github.com/avcontrol/lyngdorf/internal/protocol"
	"github.com/avcontrol/lyngdorf/pkg/models"
)

// detectTimeout bounds the whole identify exchange when the caller's
// context has no deadline of its own.
const detectTimeout = 5 * time.Second

// Detect asks the device at host which model it is. It opens a short-lived
// connection, sends a device identity query and matches the reply against
// the supported models. The Receiver for the device is then created with
// NewReceiver.
func Detect(ctx context.Context, host string) (models.Model, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(DefaultPort))
	return detect(ctx, addr, &net.Dialer{})
}

func detect(ctx context.Context, addr string, dialer connection.Dialer) (models.Model, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, detectTimeout)
		defer cancel()
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("detect %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	// Every family answers the unprefixed identity query, including the
	// TDAI-3400.
	if _, err := conn.Write(protocol.Query("DEVICE")); err != nil {
		return 0, fmt.Errorf("detect %s: %w", addr, err)
	}

	var dec protocol.Decoder
	buf := make([]byte, 256)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			frames, _ := dec.Feed(buf[:n])
			for _, f := range frames {
				if f.Mnemonic != "DEVICE" && f.Mnemonic != "IDEVICE" {
					continue
				}
				model, err := models.Lookup(f.Param)
				if err != nil {
					return 0, fmt.Errorf("detect %s: %w", addr, err)
				}
				return model, nil
			}
		}
		if err != nil {
			return 0, fmt.Errorf("detect %s: no identity reply: %w", addr, err)
		}
	}
}
