// package watchlist keeps each user's list of movie titles and persists it to a flat file.
//
// Each line of the backing file is "username:title1,,title2". The file is read once when a [Store] is built and
// rewritten in full after every change.
package watchlist
