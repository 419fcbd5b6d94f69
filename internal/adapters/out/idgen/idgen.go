// Package idgen issues identifiers for new aggregates without touching the database.
package idgen

import (
	"fmt"
	"strings"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/pkg/errs"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// DefaultTrackingPrefix starts every tracking number.
const DefaultTrackingPrefix = "TRK"

// SnowflakeGenerator issues time ordered numeric ids. Ids are unique across
// processes as long as each process uses its own node id.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := newNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &SnowflakeGenerator{node: node}, nil
}

func (g *SnowflakeGenerator) NextID() kernel.ID {
	return kernel.IDFromSnowflake(g.node.Generate())
}

// TrackingGenerator builds tracking numbers from snowflake ids and public codes from random uuids.
// The two values are unrelated, so the public code reveals nothing about creation order.
type TrackingGenerator struct {
	node   *snowflake.Node
	prefix string
}

func NewTrackingGenerator(nodeID int64, prefix string) (*TrackingGenerator, error) {
	node, err := newNode(nodeID)
	if err != nil {
		return nil, err
	}
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = DefaultTrackingPrefix
	}
	return &TrackingGenerator{node: node, prefix: prefix}, nil
}

func (g *TrackingGenerator) NextTracking() (parcel.Tracking, error) {
	number := fmt.Sprintf("%s-%s", g.prefix, strings.ToUpper(g.node.Generate().Base36()))
	return parcel.NewTracking(number, uuid.NewString())
}

func newNode(nodeID int64) (*snowflake.Node, error) {
	maxNode := int64(-1 ^ (-1 << snowflake.NodeBits))
	if nodeID < 0 || nodeID > maxNode {
		return nil, errs.NewValueIsOutOfRangeError("node id", nodeID, 0, maxNode)
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("node id", err)
	}
	return node, nil
}
