// Package distclient is the authenticated data-access layer of the
// distribution-management client.
//
// It persists a bearer session, injects it into every backend request and
// exposes one query controller per screen. Each controller publishes an
// observable view-state (idle, loading, success, empty, error); when queries
// overlap, only the most recently started one may publish.
//
// Example usage:
//
//	cfg := distclient.DefaultConfig()
//	cfg.BaseURL = "https://api.example.com"
//	c, err := distclient.New(ctx, cfg, distclient.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	if err := c.Login(ctx, "ivan@example.com", password); err != nil {
//	    return err
//	}
//	st := c.Partners.Execute(ctx, domain.PartnerQuery{Company: "Acme"})
//	fmt.Println(st.Status, len(st.Data))
package distclient
