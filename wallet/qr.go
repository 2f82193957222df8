package wallet

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// ErrNoWallet is returned by ReceiveQR when no projection is loaded.
var ErrNoWallet = errors.New("no wallet loaded")

// ReceiveQR renders the wallet address as a base64 PNG QR code for the
// receive view.
func (s *Session) ReceiveQR() (string, string, error) {
	snap, ok := s.Snapshot()
	if !ok {
		return "", "", ErrNoWallet
	}

	qr, err := qrcode.New(snap.Address, qrcode.Medium)
	if err != nil {
		return "", "", fmt.Errorf("failed to create QR code: %w", err)
	}
	png, err := qr.PNG(256)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate PNG: %w", err)
	}
	return snap.Address, base64.StdEncoding.EncodeToString(png), nil
}
