// path matching for one mount point's route table

package router

import (
	"fmt"
	"strings"

	"github.com/sleipnirhttp/sleipnir/middleware"
)

type trieNode struct {
	// static children, keyed by literal segment
	children map[string]*trieNode

	// parameter segment, eg. :id; the name lives on the child so every
	// pattern through this position binds under the name it declared
	paramChild *trieNode
	paramName  string

	// middleware chain bound at this node, if the node ends a pattern
	chain    middleware.Chain
	terminal bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[string]*trieNode)}
}

// addRoute binds a middleware chain to a path pattern. Registering the same
// pattern again replaces the chain. Two patterns declaring different
// parameter names at the same position would silently rename each other's
// bindings, so that conflict panics at registration time.
func (n *trieNode) addRoute(path string, chain middleware.Chain) {
	currentNode := n

	for segment := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
		if segment == "" {
			continue
		}

		if strings.HasPrefix(segment, ":") {
			paramName := strings.TrimPrefix(segment, ":")
			if currentNode.paramChild == nil {
				child := newTrieNode()
				child.paramName = paramName
				currentNode.paramChild = child
			} else if currentNode.paramChild.paramName != paramName {
				panic(fmt.Sprintf(
					"router: pattern %q declares parameter %q where an earlier pattern declared %q",
					path, paramName, currentNode.paramChild.paramName,
				))
			}
			currentNode = currentNode.paramChild
			continue
		}

		if _, ok := currentNode.children[segment]; !ok {
			currentNode.children[segment] = newTrieNode()
		}
		currentNode = currentNode.children[segment]
	}

	currentNode.chain = chain
	currentNode.terminal = true
}

// match walks the trie over all segments of path. Literal children win over
// the parameter child; a parameter segment binds the literal value under the
// declared name. The whole path must be consumed and land on a terminal
// node, there is no partial matching.
func (n *trieNode) match(path string) (middleware.Chain, map[string]string, bool) {
	currentNode := n
	params := make(map[string]string)

	for segment := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
		if segment == "" {
			continue
		}

		if child, ok := currentNode.children[segment]; ok {
			currentNode = child
			continue
		}

		if currentNode.paramChild != nil {
			currentNode = currentNode.paramChild
			params[currentNode.paramName] = segment
			continue
		}

		return nil, nil, false
	}

	if !currentNode.terminal {
		return nil, nil, false
	}
	return currentNode.chain, params, true
}
