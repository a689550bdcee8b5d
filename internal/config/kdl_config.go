package config

import (
	"fmt"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL attempts to load configuration from a .symld.kdl file
func LoadKDL(path string) (*Config, error) {
	// Check if the config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil // No KDL config found, use defaults
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	return parseKDL(string(content))
}

// Simple KDL parser for symld configuration
func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "scanner":
			for _, cn := range n.Children { // scanner { lenient true }
				assignSimpleBool(cn, "lenient", func(v bool) { cfg.Scanner.Lenient = v })
			}
		case "link":
			for _, cn := range n.Children {
				assignSimpleBool(cn, "warn-undefined", func(v bool) { cfg.Link.WarnUndefined = v })
				assignSimpleBool(cn, "check-multiple-defs", func(v bool) { cfg.Link.CheckMultipleDefs = v })
				assignSimpleString(cn, "app-seed", func(v string) { cfg.Link.AppSeed = v })
			}
		case "output":
			for _, cn := range n.Children {
				assignSimpleBool(cn, "quiet", func(v bool) { cfg.Output.Quiet = v })
				assignSimpleBool(cn, "verbose", func(v bool) { cfg.Output.Verbose = v })
				assignSimpleString(cn, "log-file", func(v string) { cfg.Output.LogFile = v })
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}

func assignSimpleBool(n *document.Node, target string, set func(bool)) {
	if nodeName(n) == target {
		if b, ok := firstBoolArg(n); ok {
			set(b)
		}
	}
}
