package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockMongo(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

// toDoc round-trips v through BSON so it can be served by a mock cursor response.
func toDoc(t *testing.T, v interface{}) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func cursorResponse(ns string, docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, docs...)
}

func duplicateKeyResponse() bson.D {
	return mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"})
}

// sentPipeline pops the next recorded command, which must be an aggregate,
// and returns its stages.
func sentPipeline(mt *mtest.T) []bson.Raw {
	mt.Helper()
	evt := mt.GetStartedEvent()
	require.NotNil(mt, evt)
	require.Equal(mt, "aggregate", evt.CommandName)
	values, err := evt.Command.Lookup("pipeline").Array().Values()
	require.NoError(mt, err)
	stages := make([]bson.Raw, 0, len(values))
	for _, v := range values {
		stages = append(stages, v.Document())
	}
	return stages
}

func stageNames(t *testing.T, stages []bson.Raw) []string {
	t.Helper()
	names := make([]string, 0, len(stages))
	for _, stage := range stages {
		elems, err := stage.Elements()
		require.NoError(t, err)
		require.Len(t, elems, 1)
		names = append(names, elems[0].Key())
	}
	return names
}

func decodeM(t *testing.T, raw bson.Raw) bson.M {
	t.Helper()
	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	return m
}
