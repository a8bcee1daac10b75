package helpers

import (
	// Go Internal Packages
	"fmt"
	"io"
	"strings"

	// Local Packages
	models "network-ops/models"

	// External Packages
	"github.com/goccy/go-json"
)

// PrintStruct writes v to w as indented JSON.
func PrintStruct(w io.Writer, v any) error {
	res, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(res))
	return err
}

// RenderTree draws a network tree one user per line, indented by level.
func RenderTree(w io.Writer, node models.NetworkNode) error {
	line := fmt.Sprintf("%s%s (level %d)", strings.Repeat("  ", node.User.Level), node.User.Username, node.User.Level)
	if node.User.License.Name != "" {
		line += " [" + node.User.License.Name + "]"
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := RenderTree(w, child); err != nil {
			return err
		}
	}
	return nil
}
