/*
Package mongosource provides an implementation of source.Source that
reads the label field of documents on a MongoDB collection.
*/
package mongosource

import (
	"cmp"
	"context"
	"fmt"

	"github.com/canopyml/canopy/label"
	"github.com/canopyml/canopy/source"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

type mongoSource[L cmp.Ordered] struct {
	session    *mgo.Session
	collection string
	field      string
	codec      label.Codec[L]
}

/*
Open takes a MongoDB database session, the names of a collection and
of the document field holding labels, and a label codec, and returns
a source with the labels of the collection's documents, working on
the default database for the session.
*/
func Open[L cmp.Ordered](session *mgo.Session, collection, field string, codec label.Codec[L]) source.Source[L] {
	return &mongoSource[L]{session, collection, field, codec}
}

func (ms *mongoSource[L]) ForEachLabel(ctx context.Context, lambda func(int, L) (bool, error)) error {
	iter := ms.labelCollection().Find(nil).Select(bson.M{ms.field: 1}).Iter()
	defer iter.Close()
	var doc bson.M
	for i := 0; iter.Next(&doc); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lb, err := ms.parseFieldValue(doc[ms.field])
		if err != nil {
			return fmt.Errorf("reading label of document %d on %s: %v", i, ms.collection, err)
		}
		ok, err := lambda(i, lb)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("iterating on labels of %s: %v", ms.collection, err)
	}
	return nil
}

func (ms *mongoSource[L]) Count(ctx context.Context) (int, error) {
	count, err := ms.labelCollection().Count()
	if err != nil {
		return 0, fmt.Errorf("counting documents on %s: %v", ms.collection, err)
	}
	return count, nil
}

func (ms *mongoSource[L]) CountLabels(ctx context.Context) (map[L]int, error) {
	iter := ms.labelCollection().Pipe([]bson.M{{"$group": bson.M{"_id": fmt.Sprintf("$%s", ms.field), "count": bson.M{"$sum": 1}}}}).Iter()
	defer iter.Close()
	counts := make(map[L]int)
	var doc bson.M
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lb, err := ms.parseFieldValue(doc["_id"])
		if err != nil {
			return nil, fmt.Errorf("reading grouped label on %s: %v", ms.collection, err)
		}
		var count int
		switch c := doc["count"].(type) {
		case int:
			count = c
		case int64:
			count = int(c)
		case float64:
			count = int(c)
		default:
			return nil, fmt.Errorf("reading grouped label count on %s: unexpected %T value", ms.collection, doc["count"])
		}
		counts[lb] += count
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("counting labels of %s: %v", ms.collection, err)
	}
	return counts, nil
}

func (ms *mongoSource[L]) parseFieldValue(v interface{}) (L, error) {
	var zero L
	if v == nil {
		return zero, fmt.Errorf("document has no %s field", ms.field)
	}
	text, ok := v.(string)
	if !ok {
		text = fmt.Sprintf("%v", v)
	}
	lb, err := ms.codec.Parse(text)
	if err != nil {
		return zero, err
	}
	return lb, nil
}

func (ms *mongoSource[L]) labelCollection() *mgo.Collection {
	return ms.session.DB("").C(ms.collection)
}
