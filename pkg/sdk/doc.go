// Package softhub provides an embedded Go client for the softhub software
// catalog, backed by SQLite, Redis or Valkey.
//
// The client runs the same catalog engine and listing administration as the
// HTTP service, in-process:
//
//	client, _ := softhub.New(ctx, softhub.WithSQLite("catalog.db"))
//	defer client.Close()
//
//	_, _ = client.Listings().Create(ctx, softhub.Input{
//	    Name:        "Adobe Photoshop 2024",
//	    Description: "Image editing software.",
//	    Version:     "25.0",
//	    Category:    "Adobe Creative Suite",
//	})
//
//	page, _ := client.Catalog().Browse(ctx, softhub.Query{
//	    Search: "photo",
//	    Sort:   softhub.SortDownloads,
//	    Order:  softhub.Desc,
//	})
package softhub
