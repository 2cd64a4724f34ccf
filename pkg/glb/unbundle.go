package glb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Unbundle writes u as a text document at gltfPath and, when it has a
// payload, a binary file next to it named after the document with a .bin
// extension. The first buffer's uri is pointed at that file. Unknown
// chunks are dropped since the text form has nowhere to keep them.
func Unbundle(u *Unpacked, gltfPath string) error {
	if u.Document.Source == nil {
		return ErrNoSource
	}
	root, ok := cloneTree(u.Document.Source.Root).(map[string]any)
	if !ok {
		return fmt.Errorf("%w: root is not an object", ErrNoSource)
	}

	if u.Payload != nil {
		bufs := objects(root, "buffers")
		if len(bufs) == 0 {
			return fmt.Errorf("unbundle: payload present but document declares no buffers")
		}
		binName := strings.TrimSuffix(filepath.Base(gltfPath), filepath.Ext(gltfPath)) + ".bin"

		data := u.Payload
		if n, ok := intField(bufs[0], "byteLength"); ok && n >= 0 && n <= len(data) {
			data = data[:n]
		}
		if err := os.WriteFile(filepath.Join(filepath.Dir(gltfPath), binName), data, 0o644); err != nil {
			return fmt.Errorf("unbundle: %w", err)
		}
		bufs[0]["uri"] = binName
	}

	text, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("unbundle: encoding document: %w", err)
	}
	if err := os.WriteFile(gltfPath, append(text, '\n'), 0o644); err != nil {
		return fmt.Errorf("unbundle: %w", err)
	}
	return nil
}
