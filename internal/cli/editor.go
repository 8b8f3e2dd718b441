package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProductFields are the text fields of a product as edited by `menu edit -i`.
type ProductFields struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
}

const editHeader = "# Edit the product and save. Lines starting with # are ignored.\n" +
	"# The image is kept unless --image is also given.\n"

// EditFields writes fields as YAML to a temp file, opens it in the user's
// editor and parses the result. Unknown keys are rejected.
func EditFields(fields ProductFields) (ProductFields, error) {
	body, err := yaml.Marshal(fields)
	if err != nil {
		return ProductFields{}, fmt.Errorf("encoding fields: %w", err)
	}

	edited, err := EditInEditor(append([]byte(editHeader), body...), ".yaml")
	if err != nil {
		return ProductFields{}, err
	}

	var out ProductFields
	dec := yaml.NewDecoder(bytes.NewReader(edited))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		return ProductFields{}, fmt.Errorf("parsing edited product: %w", err)
	}
	return out, nil
}

// EditInEditor opens content in $VISUAL or $EDITOR and returns what the
// user saved. suffix names the temp file extension for syntax highlighting.
func EditInEditor(content []byte, suffix string) ([]byte, error) {
	editor := getEditor()
	if editor == "" {
		return nil, errors.New("EDITOR not set; set it or pass the fields as flags instead of -i")
	}

	f, err := os.CreateTemp("", "menu-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	_, werr := f.Write(content)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return nil, fmt.Errorf("writing temp file: %w", werr)
	}

	if err := runEditor(editor, path); err != nil {
		return nil, err
	}

	out, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading edited file: %w", err)
	}
	return out, nil
}

// getEditor prefers VISUAL over EDITOR.
func getEditor() string {
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	return os.Getenv("EDITOR")
}

// runEditor runs editor, which may carry arguments ("code --wait"), on path.
func runEditor(editor, path string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return errors.New("empty editor command")
	}

	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}
