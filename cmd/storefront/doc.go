// Command storefront runs and manages the storefront service.
//
//	storefront serve              # HTTP + gRPC until SIGINT/SIGTERM
//	storefront migrate            # apply pending migrations
//	storefront migrate:rollback   # undo the last batch
//	storefront migrate:status
//	storefront db:seed            # demo catalog and customers
//	storefront route:list
//	storefront admin:create --username ada --password secret [--superuser]
package main
