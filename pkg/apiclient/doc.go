// Package apiclient hands out REST clients bound to a tenant scope.
//
// Client kinds are registered once at startup with a Recipe naming the scope
// they require and the API root they talk to. A Factory then resolves a kind
// with no scope, a dealer, or a dealer and location:
//
//	reg := apiclient.NewRegistry()
//	reg.MustRegister(KindLocations, apiclient.Recipe{
//		Scope:   apiclient.DealerScope,
//		APIRoot: "locations",
//		New:     func(c *apiclient.Client) apiclient.APIClient { return &LocationsClient{apiclient.DealerClient{Client: c}} },
//	})
//	f := apiclient.NewFactory(reg, adapters)
//	c, err := f.ResolveDealer(KindLocations, dealerID)
//
// Resolution never touches the network. A client asks its AdapterFactory for
// a REST adapter on its first call and keeps that adapter for its lifetime.
package apiclient
