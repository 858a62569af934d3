// Package adsearch wraps directory queries against Active Directory (or a
// generic LDAP server) behind a simplified parameter surface and reshapes
// the returned schema attributes into display-friendly records.
//
// The package exposes two operations, user search and computer search, each
// accepting a set of optional criteria that are AND-combined into a single
// filter. Comparison is wildcard (contains) by default or exact per call;
// an IP-address criterion is always exact.
//
// Two backend variants sit behind one query interface: an Active Directory
// variant selected when the RootDSE advertises AD capabilities, and a
// raw-protocol variant for everything else. The variant is chosen once at
// client construction by an explicit capability probe; failure to reach the
// directory at that point is fatal.
//
// # Basic Usage
//
//	config := adsearch.Config{
//		Server: "ldaps://dc01.example.com:636",
//		BaseDN: "dc=example,dc=com",
//	}
//
//	client, err := adsearch.New(&config, "cn=reader,dc=example,dc=com", "password")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	users, err := client.SearchUsers(adsearch.UserQuery{
//		FirstName: "John",
//		LastName:  "Doe",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, u := range users {
//		fmt.Printf("%s %s (%s) <%s>\n", u.FirstName, u.LastName, u.UserName, u.Email)
//	}
//
// # Error Handling
//
// Operations fail as a whole: there is no retry and no partial-result
// emission. The one per-record recoverable condition is a failed naming
// lookup while deriving a computer's IP address, which leaves the field
// empty instead of failing the query. Failures carry a *DirectoryError with
// the operation name, server and LDAP result code; ErrAddressUnresolved
// marks an IP-address criterion that could not be translated to a host name
// on the raw-protocol backend.
package adsearch
