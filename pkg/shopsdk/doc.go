/*
Package shopsdk provides a client SDK for the vegetable shop session gateway.

# Overview

The shopsdk package keeps a process-local view of "who is logged in" in sync
with the HTTP session the gateway manages. The credential itself is an
httpOnly cookie the client's jar carries; application code only ever sees the
derived User.

# Client vs SessionStore

The package is organized around two types:

  - Client: the plain HTTP surface of the gateway (login, register, logout,
    fetch current user) with a cookie jar
  - SessionStore: the cached, self-revalidating session state built on top

Create a Client against the gateway origin and wrap it in a SessionStore:

	client := shopsdk.NewClient("https://shop.example.com")
	session := shopsdk.NewSessionStore(client)

	user, err := session.Login(ctx, "jo@example.com", "secret")

	if session.IsAuthenticated() {
		fmt.Println("hello,", session.DisplayName())
	}

# Session semantics

FetchUser distinguishes three outcomes: an authenticated user, a settled
logged-out state (a 401 or an unreachable gateway, neither of which is an
error), and a genuine failure. Failures are retried at most twice; auth
rejections never are.

A cached user is fresh for five minutes. RevalidateOnFocus and
RevalidateOnReconnect refetch only when that window has passed, and Run
drives a background refresh every fifteen minutes:

	go session.Run(ctx)

Logout always wins: the cached user is cleared before the network call, and
a login or refresh that was already in flight when Logout ran can never
resurrect the session.

All numbers above are the DefaultPolicy; NewSessionStoreWithPolicy accepts a
custom Policy.
*/
package shopsdk
