package chia

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FormatExport renders the observer-only export: no secret material is written.
func FormatExport(k *KeyMaterial, address string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Master Public Key:   %s\n", k.PublicKey.Hex())
	fmt.Fprintf(&b, "Wallet Observer Key: %s\n", k.Wallet.Hex())
	fmt.Fprintf(&b, "Address:             %s\n", address)
	return b.String()
}

// ExportFileName is <fingerprint>.txt.
func ExportFileName(k *KeyMaterial) string {
	return fmt.Sprintf("%d.txt", k.Fingerprint())
}

// ExportKeys writes the public keys and address to dir and returns the file path.
func ExportKeys(dir string, k *KeyMaterial, address string) (string, error) {
	path := filepath.Join(dir, ExportFileName(k))
	if err := os.WriteFile(path, []byte(FormatExport(k, address)), 0600); err != nil {
		return "", fmt.Errorf("export keys: %w", err)
	}
	return path, nil
}
