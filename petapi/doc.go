// Package petapi binds the request pipeline to the pet adoption API: a
// closed set of request constructors (animal search, animal by id, animal
// types), the matching response models, and a Client that wires transport,
// token store and token fetcher from a Config.
package petapi
