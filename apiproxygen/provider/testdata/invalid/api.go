// Package invalid declares methods that each trigger one diagnostic.
package invalid

import "context"

//apiproxy:client broken
type Broken interface {
	//apiproxy:method GET items/{id
	UnclosedTemplate(id string) (string, error)

	//apiproxy:method GET items/{itemId}
	UnknownParam(id string) (string, error)

	//apiproxy:method GET items/{Id}
	AmbiguousParam(id string, ID string) (string, error)

	//apiproxy:method GET ctx/{ctx}
	ContextBound(ctx context.Context) error

	//apiproxy:method GET items
	TooManyResults() (string, int, error)

	//apiproxy:method GET items
	NoError() string

	//apiproxy:method GET items
	ChannelResult() (chan int, error)

	//apiproxy:method POST items
	Create() error

	//apiproxy:method POST items/{missing}
	BindingBeforeVerb() error

	//apiproxy:method GET items/{id}
	Valid(ctx context.Context, id int) (string, error)
}
