package navnode

import (
	"strconv"

	"github.com/BrandonKowalski/navstack/pkg/navstack/constants"
)

// WrapperID returns the id of the chrome surface of the Tab or Pane key.
func WrapperID(key string) string {
	return key + constants.WrapperSuffix
}

// TabContentID returns the id of the content surface of branch i of Tab key.
func TabContentID(key string, i int) string {
	return key + constants.ContentInfix + strconv.Itoa(i)
}

// PaneContentID returns the id of the content surface of slot r of Pane key.
func PaneContentID(key string, r Role) string {
	return key + constants.ContentInfix + r.String()
}

// surfaceIDs lists every surface id n can generate besides its own key:
// the wrapper plus one content id per branch or slot, active or not.
func surfaceIDs(n Node) []string {
	switch node := n.(type) {
	case Tab:
		ids := []string{WrapperID(node.NodeKey)}
		for i := range node.Branches {
			ids = append(ids, TabContentID(node.NodeKey, i))
		}
		return ids
	case Pane:
		ids := []string{WrapperID(node.NodeKey)}
		for _, slot := range node.Slots {
			ids = append(ids, PaneContentID(node.NodeKey, slot.Role))
		}
		return ids
	default:
		return nil
	}
}
