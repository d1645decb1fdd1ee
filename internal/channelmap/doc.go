// Package channelmap loads and classifies the mapping from a board's index
// channel to its ordered list of data channels. The map is read once at
// startup from a JSON file; nothing in this package touches the network or
// the store.
package channelmap
